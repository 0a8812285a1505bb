package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.GetState)
	r.Post("/upload", h.Upload)
	r.Get("/file", h.DownloadFile)
	r.Post("/start", h.Start)
	r.Post("/answer", h.Answer)
	r.Post("/next", h.Next)
	r.Post("/previous", h.Previous)
	r.Post("/goto/{index}", h.GoTo)
	r.Post("/reset", h.Reset)
	r.Get("/statistics", h.GetStatistics)
	r.Delete("/questions", h.ClearQuestions)
	r.Post("/questions/{id}/explanation", h.Explain)
	return r
}
