package domain

import "time"

// StageType classifies a pipeline step.
type StageType string

const (
	StageTypeNoticePeriod StageType = "notice_period"
	StageTypeFnF          StageType = "fnf"
	StageTypeInterview    StageType = "interview"
	StageTypeHandover     StageType = "handover"
	StageTypeOther        StageType = "other"
	StageTypeArchived     StageType = "archived"
)

// StageTypeLabels maps stage types to their display labels, in display order.
var StageTypeLabels = []struct {
	Type  StageType
	Label string
}{
	{StageTypeNoticePeriod, "Notice Period"},
	{StageTypeFnF, "FnF Settlement"},
	{StageTypeInterview, "Exit Interview"},
	{StageTypeHandover, "Work Handover"},
	{StageTypeOther, "Other"},
	{StageTypeArchived, "Archived"},
}

// Stage is one step of an offboarding pipeline. OffboardingID never changes
// once the stage is created.
type Stage struct {
	ID            string
	OffboardingID string
	Title         string
	Type          StageType
	Managers      []string
	Sequence      int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
