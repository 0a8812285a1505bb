package explain

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Explain)
	r.Post("/test-connection", h.TestConnection)
	return r
}
