package httpd

import (
	"net/http"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

// GetActivityTypes отдаёт справочник видов занятий. Недоступный каталог
// превращается в пустой список: форма продолжает работать без выбора.
func (h *Handler) GetActivityTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.catalogClient.ActivityTypes(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Activity catalog unavailable")
	}
	if types == nil {
		types = []models.ActivityDescriptor{}
	}

	writeJSON(w, http.StatusOK, models.ActivityTypesResponse{ActivityTypes: types})
}

func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	langs, err := h.catalogClient.Languages(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Language catalog unavailable")
	}
	if langs == nil {
		langs = []models.LanguageDescriptor{}
	}

	writeJSON(w, http.StatusOK, models.LanguagesResponse{Languages: langs})
}
