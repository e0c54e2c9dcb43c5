package domain

import "time"

// NoticeUnit is the unit the notice period length is expressed in.
type NoticeUnit string

const (
	NoticeUnitDay   NoticeUnit = "day"
	NoticeUnitMonth NoticeUnit = "month"
)

// OffboardingEmployee enrolls an employee into an offboarding process through
// its current stage.
type OffboardingEmployee struct {
	ID                 string
	EmployeeID         string
	EmployeeName       string
	StageID            string
	NoticePeriod       int
	Unit               NoticeUnit
	NoticePeriodStarts *time.Time
	NoticePeriodEnds   *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
