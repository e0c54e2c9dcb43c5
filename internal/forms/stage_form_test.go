package forms

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

func validStageValues() url.Values {
	return url.Values{
		"title":     {"Knowledge transfer"},
		"type":      {"handover"},
		"managers":  {"emp-2"},
		"sequence":  {"3"},
		"is_active": {"on"},
	}
}

func TestStageFormNeverExposesParent(t *testing.T) {
	fx := newFixture()
	f, err := NewOffboardingStageForm(context.Background(), fx.deps(), "ob-A", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "type", "managers", "sequence", "is_active"}, fieldNames(f.Form))
	assert.Nil(t, f.Field("offboarding_id"))
}

func TestStageFormIgnoresSubmittedParent(t *testing.T) {
	fx := newFixture()
	f, err := NewOffboardingStageForm(context.Background(), fx.deps(), "ob-A", nil)
	require.NoError(t, err)

	values := validStageValues()
	values.Set("offboarding_id", "ob-B")
	f.Bind(values, nil)

	record, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "ob-A", record.OffboardingID)
	assert.Equal(t, domain.StageTypeHandover, record.Type)
	assert.Equal(t, 3, record.Sequence)
	require.Len(t, fx.stages.created, 1)
}

func TestStageFormExistingStageKeepsParent(t *testing.T) {
	fx := newFixture()
	existing := fx.stages.stages[2]
	f, err := NewOffboardingStageForm(context.Background(), fx.deps(), "ob-A", &existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"Handover"}, f.Field("title").Initial)

	f.Bind(validStageValues(), nil)
	record, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "ob-B", record.OffboardingID)
	assert.Equal(t, "s-3", record.ID)
	require.Len(t, fx.stages.updated, 1)
}

func TestStageFormWithoutParent(t *testing.T) {
	fx := newFixture()
	f, err := NewOffboardingStageForm(context.Background(), fx.deps(), "", nil)
	require.NoError(t, err)

	f.Bind(validStageValues(), nil)
	_, err = f.Save(context.Background(), false)
	assert.ErrorIs(t, err, ErrMissingOffboarding)
	assert.Empty(t, fx.stages.created)
}

func TestStageFormRejectsNegativeSequence(t *testing.T) {
	fx := newFixture()
	f, err := NewOffboardingStageForm(context.Background(), fx.deps(), "ob-A", nil)
	require.NoError(t, err)

	values := validStageValues()
	values.Set("sequence", "-1")
	f.Bind(values, nil)

	require.False(t, f.IsValid())
	assert.Equal(t, []string{"Ensure this value is greater than or equal to 0."}, f.Errors()["sequence"])
}
