package handler

import (
	"net/http"

	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/common"
	"sumo_console/internal/console/service"

	"github.com/go-chi/chi/v5"
)

type ConfigHandler struct {
	base
	competition *service.CompetitionService
}

func NewConfigHandler(v *view.Renderer, once *service.OnceGuard, competition *service.CompetitionService) *ConfigHandler {
	return &ConfigHandler{base: base{view: v, once: once}, competition: competition}
}

func (h *ConfigHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page)
	r.Post("/", h.saveSettings)
	r.Post("/competencia", h.toggleCompetition)
}

type configPage struct {
	Competing bool
	Ranking   []backend.Clasificado
	Settings  service.Settings
}

func (h *ConfigHandler) page(w http.ResponseWriter, r *http.Request) {
	competing, ranking, settings, err := h.competition.Status(r.Context())
	if err != nil {
		h.renderFlash(w, r, "configuracion", "Configuración", configPage{
			Settings: service.Settings{NumeroClasificados: 3, NumeroPistas: 4},
		}, &common.Flash{Kind: "error", Message: "Error al cargar el estado de la competencia"})
		return
	}
	h.render(w, r, "configuracion", "Configuración", configPage{
		Competing: competing,
		Ranking:   ranking,
		Settings:  settings,
	})
}

func (h *ConfigHandler) saveSettings(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/configuracion"
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	if !h.claimOnce(w, r, backTo) {
		return
	}
	err := h.competition.SaveSettings(r.Context(), service.Settings{
		NumeroClasificados: formInt(r.PostForm, "numeroClasificados"),
		NumeroPistas:       formInt(r.PostForm, "numeroPistas"),
	})
	if err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "success", "Configuración guardada")
}

// toggleCompetition flips the global flag: start when stopped, stop when
// started. Stop keeps the backend's response as the ranking snapshot; start
// never fetches one.
func (h *ConfigHandler) toggleCompetition(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/configuracion"
	if !h.claimOnce(w, r, backTo) {
		return
	}

	competing, _, _, err := h.competition.Status(r.Context())
	if err != nil {
		h.fail(w, r, backTo, err)
		return
	}

	if competing {
		if _, err := h.competition.Stop(r.Context()); err != nil {
			h.fail(w, r, backTo, err)
			return
		}
		h.ok(w, r, backTo, "info", "Competencia detenida")
		return
	}

	if err := h.competition.Start(r.Context()); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "success", "Competencia iniciada")
}
