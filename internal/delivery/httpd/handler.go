package httpd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/integration"
)

type Handler struct {
	formService       service.FormService
	submissionService service.SubmissionService
	statusService     service.StatusService
	catalogClient     integration.CatalogClient
	logger            zerolog.Logger
}

func NewHandler(
	formService service.FormService,
	submissionService service.SubmissionService,
	statusService service.StatusService,
	catalogClient integration.CatalogClient,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		formService:       formService,
		submissionService: submissionService,
		statusService:     statusService,
		catalogClient:     catalogClient,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	// Health check
	router.Get("/health", h.HealthCheck)
	router.Get("/status", h.GetServiceStatus)

	// Versioned API
	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/{session_id}", h.GetSession)
			r.Patch("/{session_id}/fields", h.UpdateFields)
			r.Post("/{session_id}/submit", h.SubmitSession)
		})

		api.Route("/catalog", func(r chi.Router) {
			r.Get("/activity-types", h.GetActivityTypes)
			r.Get("/languages", h.GetLanguages)
		})

		api.Get("/documents/{document_id}", h.DownloadDocument)

		api.Route("/submissions", func(r chi.Router) {
			r.Get("/", h.GetSubmissions)
			r.Get("/stats", h.GetSubmissionStats)
			r.Get("/{submission_id}", h.GetSubmission)
		})
	})
}

// handleServiceError отображает типизированные ошибки сервисов на HTTP-коды.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	var renderErr *integration.RenderError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "Validation failed",
			Message: fmt.Sprintf("%d field(s) failed validation", len(vErr.Errors)),
			Details: vErr.Errors,
		})
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrDocumentNotFound),
		errors.Is(err, service.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBuildInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.As(err, &renderErr):
		// Сбой сервиса рендеринга: 502 с исходным сообщением апстрима.
		h.logger.Error().Err(err).Msg("Render service error")
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{
			Error:   "Document generation failed",
			Message: renderErr.Message,
		})
	default:
		h.logger.Error().Err(err).Msg("Request failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Вспомогательные функции

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
