package models

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusSucceeded SubmissionStatus = "succeeded"
	SubmissionStatusFailed    SubmissionStatus = "failed"
)

func (s SubmissionStatus) String() string {
	return string(s)
}

func IsValidSubmissionStatus(status string) bool {
	switch status {
	case "succeeded", "failed":
		return true
	default:
		return false
	}
}

// Submission - строка журнала сборок документов.
type Submission struct {
	ID           string    `json:"id" db:"id"`
	SessionID    string    `json:"session_id" db:"session_id"`
	DeviceID     string    `json:"device_id,omitempty" db:"device_id"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	ActivityName string    `json:"activity_name,omitempty" db:"-"`
	Language     string    `json:"language" db:"language"`
	Name         string    `json:"name" db:"name"`
	StudentID    string    `json:"student_id" db:"student_id"`
	Degree       string    `json:"degree" db:"degree"`
	City         string    `json:"city" db:"city"`
	Status       string    `json:"status" db:"status"` // succeeded, failed
	Error        *string   `json:"error,omitempty" db:"error"`
	DocumentID   *string   `json:"document_id,omitempty" db:"document_id"`
	Checksum     *string   `json:"checksum,omitempty" db:"checksum"`
	SizeBytes    *int64    `json:"size_bytes,omitempty" db:"size_bytes"`
	DurationMs   int       `json:"duration_ms" db:"duration_ms"`
	RequestedAt  time.Time `json:"requested_at" db:"requested_at"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
}
