package httpd

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// SubmitSession - действие отправки формы. Успешная сборка отдаёт PDF
// прямо в ответе, идентификатор документа уходит в заголовок.
func (h *Handler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	ctx := r.Context()
	result, err := h.formService.Submit(ctx, sessionID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", "inline; filename=document.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	w.Header().Set("X-Document-ID", result.DocumentID)
	w.WriteHeader(http.StatusOK)
	w.Write(result.PDF)
}

// DownloadDocument отдаёт ранее собранный документ из архива.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	documentID := chi.URLParam(r, "document_id")
	if documentID == "" {
		writeError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	ctx := r.Context()
	rc, size, err := h.formService.DownloadDocument(ctx, documentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "inline; filename=document.pdf")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error().Err(err).Str("document_id", documentID).Msg("Failed to stream document")
	}
}
