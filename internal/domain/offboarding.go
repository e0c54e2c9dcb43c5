package domain

import "time"

// OffboardingStatus enumerates the lifecycle of an offboarding process.
type OffboardingStatus string

const (
	OffboardingStatusOngoing   OffboardingStatus = "ongoing"
	OffboardingStatusCompleted OffboardingStatus = "completed"
)

// OffboardingStatuses lists statuses in display order.
var OffboardingStatuses = []OffboardingStatus{
	OffboardingStatusOngoing,
	OffboardingStatusCompleted,
}

// Offboarding is the top-level workflow tracking employee exits.
type Offboarding struct {
	ID          string
	Title       string
	Description string
	Managers    []string
	Status      OffboardingStatus
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
