package explain

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/saulo-duarte/binary-brain/internal/config"
)

// CredentialSource yields the currently configured API key.
type CredentialSource interface {
	APIKey() string
}

type Handler struct {
	service     Service
	credentials CredentialSource
}

func NewHandler(s Service, credentials CredentialSource) *Handler {
	return &Handler{service: s, credentials: credentials}
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ExplanationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	explanation, err := h.service.RequestExplanation(r.Context(), req.Question, req.CorrectAnswer, h.credentials.APIKey())
	if err != nil {
		log.WithError(err).Errorf("Failed to request explanation: %v", err)
		http.Error(w, err.Error(), StatusCode(err))
		return
	}

	config.JSON(w, http.StatusOK, ExplanationResponse{Explanation: explanation})
}

func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req ConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	credential := strings.TrimSpace(req.APIKey)
	if credential == "" {
		credential = h.credentials.APIKey()
	}

	resp, err := h.service.TestConnection(r.Context(), credential)
	if err != nil {
		log.WithError(err).Warn("Connection test failed")
		http.Error(w, err.Error(), StatusCode(err))
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
