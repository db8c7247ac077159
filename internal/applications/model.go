package applications

import "time"

// Status is the stage of a job application.
type Status string

const (
	StatusApplied    Status = "applied"
	StatusInProgress Status = "in-progress"
	StatusRejected   Status = "rejected"
	StatusOffered    Status = "offered"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInProgress, StatusRejected, StatusOffered:
		return true
	}
	return false
}

// Application is one tracked job application. Only Status and LastUpdated change after creation.
type Application struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	JobTitle    string    `json:"jobTitle"`
	Company     string    `json:"company"`
	JobURL      string    `json:"jobUrl"`
	Status      Status    `json:"status"`
	AppliedDate string    `json:"appliedDate"`
	LastUpdated time.Time `json:"lastUpdated"`
	Notes       string    `json:"notes,omitempty"`
	Location    string    `json:"location,omitempty"`
	SalaryRange string    `json:"salaryRange,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// nextUpdate returns a LastUpdated value strictly after prev.
func nextUpdate(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond)
}
