package session

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/saulo-duarte/binary-brain/internal/config"
	"github.com/saulo-duarte/binary-brain/internal/explain"
	"github.com/saulo-duarte/binary-brain/internal/ingest"
	"github.com/saulo-duarte/binary-brain/internal/quiz"
)

// multipart framing on top of the file itself
const uploadOverhead = 1 << 20

type Handler struct {
	service     Service
	maxFileSize int64
}

func NewHandler(s Service, maxFileSize int64) *Handler {
	return &Handler{service: s, maxFileSize: maxFileSize}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+uploadOverhead)
	_, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			config.JSON(w, http.StatusRequestEntityTooLarge, ingest.FileUploadResult{
				Questions: []quiz.Question{},
				Errors:    []string{ingest.TooLargeMessage(h.maxFileSize)},
			})
			return
		}
		log.WithError(err).Warn("Upload without a readable file field")
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}

	result := h.service.Upload(r.Context(), ingest.FromMultipart(header))
	if !result.Success {
		config.JSON(w, http.StatusUnprocessableEntity, result)
		return
	}
	config.JSON(w, http.StatusOK, result)
}

func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	file, err := h.service.File(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoFile) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load uploaded file")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	contentType := file.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.State(r.Context()))
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Start(r.Context()))
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	var dto AnswerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil || dto.Answer == nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	config.JSON(w, http.StatusOK, h.service.Answer(r.Context(), *dto.Answer))
}

func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Next(r.Context()))
}

func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Previous(r.Context()))
}

func (h *Handler) GoTo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid question index", http.StatusBadRequest)
		return
	}
	config.JSON(w, http.StatusOK, h.service.GoTo(r.Context(), index))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Reset(r.Context()))
}

func (h *Handler) ClearQuestions(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Clear(r.Context()))
}

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Statistics(r.Context()))
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	explanation, err := h.service.Explain(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), explain.StatusCode(err))
		return
	}

	config.JSON(w, http.StatusOK, ExplanationResponse{QuestionID: id, Explanation: explanation})
}
