package entity

import "time"

// Experience is a work-experience record owned by a profile. ID is the
// storage identity; AccountID must reference an existing, non-deleted
// profile (validated by the experience service).
type Experience struct {
	ID          string
	AccountID   string
	StartAt     time.Time
	EndAt       time.Time
	JobRole     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
