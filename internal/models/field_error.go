package models

type FieldErrorCode string

const (
	ErrCodeFieldRequired         FieldErrorCode = "field_required"
	ErrCodeActivityFieldRequired FieldErrorCode = "activity_field_required"
	ErrCodeMalformedDate         FieldErrorCode = "malformed_date"
)

// FieldError описывает одно нарушение правил для конкретного поля.
type FieldError struct {
	Field   string         `json:"field"`
	Code    FieldErrorCode `json:"code"`
	Message string         `json:"message"`
}
