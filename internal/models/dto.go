package models

import "time"

// Data Transfer Objects

type CreateSessionRequest struct {
	DeviceID string `json:"device_id,omitempty"`
}

type UpdateFieldsRequest struct {
	ActivityType *string `json:"activity_type,omitempty"`
	Language     *string `json:"language,omitempty"`
	Name         *string `json:"name,omitempty"`
	ID           *string `json:"id,omitempty"`
	Degree       *string `json:"degree,omitempty"`
	Course       *string `json:"course,omitempty"`
	Professor    *string `json:"professor,omitempty"`
	Date         *string `json:"date,omitempty"`
	City         *string `json:"city,omitempty"`
	ImagePath    *string `json:"image_path,omitempty"`
}

type ValidationResponse struct {
	Valid  bool         `json:"valid"`
	Strict bool         `json:"strict"`
	Errors []FieldError `json:"errors"`
}

type SessionResponse struct {
	SessionID  string             `json:"session_id"`
	Fields     RawFieldInputs     `json:"fields"`
	Validation ValidationResponse `json:"validation"`
	CreatedAt  time.Time          `json:"created_at"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

type ActivityDescriptor struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

type LanguageDescriptor struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type ActivityTypesResponse struct {
	ActivityTypes []ActivityDescriptor `json:"activity_types"`
}

type LanguagesResponse struct {
	Languages []LanguageDescriptor `json:"languages"`
}

type SubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"total_pages"`
}

type SubmissionStatsResponse struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type StatusResponse struct {
	Status        string    `json:"status"`
	Database      bool      `json:"database"`
	Redis         bool      `json:"redis"`
	RabbitMQ      bool      `json:"rabbitmq"`
	Storage       bool      `json:"storage"`
	Renderer      bool      `json:"renderer"`
	ActiveWorkers int       `json:"active_workers"`
	Timestamp     time.Time `json:"timestamp"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}
