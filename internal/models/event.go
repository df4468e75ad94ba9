package models

import (
	"time"
)

// SubmissionRecordedEvent публикуется после каждой попытки сборки документа
// и переносит строку журнала в хранилище через очередь.
type SubmissionRecordedEvent struct {
	SubmissionID string    `json:"submission_id"`
	SessionID    string    `json:"session_id"`
	DeviceID     string    `json:"device_id,omitempty"`
	ActivityType string    `json:"activity_type"`
	Language     string    `json:"language"`
	Name         string    `json:"name"`
	StudentID    string    `json:"student_id"`
	Degree       string    `json:"degree"`
	City         string    `json:"city"`
	Status       string    `json:"status"`
	Error        string    `json:"error,omitempty"`
	DocumentID   string    `json:"document_id,omitempty"`
	Checksum     string    `json:"checksum,omitempty"`
	SizeBytes    int64     `json:"size_bytes,omitempty"`
	DurationMs   int       `json:"duration_ms"`
	RequestedAt  time.Time `json:"requested_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
