package forms

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/offboarding-service/internal/domain"
)

func TestTaskFormFields(t *testing.T) {
	fx := newFixture()
	f, err := NewTaskForm(context.Background(), fx.deps(), "", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "stage_id", "managers", "tasks_to"}, fieldNames(f.Form))
	assert.Nil(t, f.Field("status"))

	stage := f.Field("stage_id")
	require.NotNil(t, stage.EmptyLabel)
	assert.Equal(t, "All Stages in Offboarding", *stage.EmptyLabel)
	assert.Equal(t, []string{"s-1", "s-2", "s-3"}, choiceValues(stage))

	assert.Nil(t, f.Field("managers").EmptyLabel)
	assert.True(t, f.Field("managers").Required)
	assert.True(t, f.Field("tasks_to").Required)
	assert.Equal(t, []string{"en-1", "en-2", "en-3"}, choiceValues(f.Field("tasks_to")))
}

func TestTaskFormScopedStages(t *testing.T) {
	fx := newFixture()
	f, err := NewTaskForm(context.Background(), fx.deps(), "ob-B", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"s-3"}, choiceValues(f.Field("stage_id")))
	opts := f.View().Fields[1].Options
	require.Len(t, opts, 2)
	assert.Equal(t, OptionView{Label: "All Stages in Offboarding", Selected: true}, opts[0])
}

func TestTaskFormAssignsIdempotently(t *testing.T) {
	fx := newFixture()
	f, err := NewTaskForm(context.Background(), fx.deps(), "", nil)
	require.NoError(t, err)

	f.Bind(url.Values{
		"title":    {"Return laptop"},
		"managers": {"emp-1"},
		"tasks_to": {"en-1", "en-2"},
	}, nil)
	task, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Nil(t, task.StageID)
	assert.Equal(t, 1, fx.assignments.count("en-1", task.ID))
	assert.Equal(t, 1, fx.assignments.count("en-2", task.ID))

	again, err := NewTaskForm(context.Background(), fx.deps(), "", task)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en-1", "en-2"}, again.Field("tasks_to").Initial)

	again.Bind(url.Values{
		"title":    {"Return laptop"},
		"managers": {"emp-1"},
		"tasks_to": {"en-1"},
	}, nil)
	_, err = again.Save(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, fx.assignments.count("en-1", task.ID))
	assert.Len(t, fx.assignments.rows, 2)
	require.Len(t, fx.tasks.updated, 1)
}

func TestTaskFormWithoutCommitAssignsNothing(t *testing.T) {
	fx := newFixture()
	f, err := NewTaskForm(context.Background(), fx.deps(), "", nil)
	require.NoError(t, err)

	f.Bind(url.Values{
		"title":    {"Revoke access"},
		"stage_id": {"s-2"},
		"managers": {"emp-1"},
		"tasks_to": {"en-1"},
	}, nil)
	task, err := f.Save(context.Background(), false)
	require.NoError(t, err)

	require.NotNil(t, task.StageID)
	assert.Equal(t, "s-2", *task.StageID)
	assert.Empty(t, fx.tasks.created)
	assert.Empty(t, fx.assignments.rows)
}

func TestTaskFormIgnoresSubmittedStatus(t *testing.T) {
	fx := newFixture()
	existing := &domain.Task{ID: "task-9", Title: "Exit survey", Status: domain.TaskStatusStuck}
	f, err := NewTaskForm(context.Background(), fx.deps(), "", existing)
	require.NoError(t, err)

	f.Bind(url.Values{
		"title":    {"Exit survey"},
		"managers": {"emp-2"},
		"tasks_to": {"en-3"},
		"status":   {"completed"},
	}, nil)
	task, err := f.Save(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusStuck, task.Status)
}
