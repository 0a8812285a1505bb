package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/binary-brain/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, toResponse(h.service.Get()))
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto UpdateSettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body for settings update")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), dto)
	if err != nil {
		if errors.Is(err, ErrInvalidTheme) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to update settings")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.service.ToggleTheme(r.Context())
	config.JSON(w, http.StatusOK, toResponse(h.service.Get()))
}

func (h *Handler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	config.JSON(w, http.StatusOK, toResponse(h.service.Get()))
}
