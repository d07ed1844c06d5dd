package handler

import (
	"net/http"

	"sumo_console/internal/api/view"
	"sumo_console/internal/console/service"
)

type HomeHandler struct {
	base
}

func NewHomeHandler(v *view.Renderer, once *service.OnceGuard) *HomeHandler {
	return &HomeHandler{base: base{view: v, once: once}}
}

func (h *HomeHandler) Page(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "home", "Inicio", nil)
}
