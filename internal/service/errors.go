package service

import (
	"errors"
	"fmt"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

// Типизированные ошибки для корректного маппинга на HTTP-коды в delivery-слое.
var (
	ErrSessionNotFound    = errors.New("form session not found")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrBuildInFlight      = errors.New("document build already in progress")
)

// ValidationError переносит список нарушений по полям до HTTP-слоя.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field error(s)", len(e.Errors))
}
