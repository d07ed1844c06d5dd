package handler

import (
	"log"
	"net/http"
	"sort"

	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/console/service"

	"github.com/go-chi/chi/v5"
)

// PublicHandler serves the unauthenticated results board.
type PublicHandler struct {
	base
	api *backend.Client
}

func NewPublicHandler(v *view.Renderer, once *service.OnceGuard, api *backend.Client) *PublicHandler {
	return &PublicHandler{base: base{view: v, once: once}, api: api}
}

func (h *PublicHandler) RegisterRoutes(r chi.Router) {
	r.Get("/resultados", h.results)
}

func (h *PublicHandler) results(w http.ResponseWriter, r *http.Request) {
	scores, err := h.api.Puntajes.ListDetails(r.Context())
	if err != nil {
		// The public board never surfaces errors; it just shows nothing.
		log.Printf("loading public scores: %v", err)
		scores = nil
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Puntaje > scores[j].Puntaje })
	h.render(w, r, "resultados", "Resultados", scores)
}
