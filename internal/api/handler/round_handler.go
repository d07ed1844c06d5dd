package handler

import (
	"log"
	"net/http"
	"strconv"

	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/common"
	"sumo_console/internal/console/service"

	"github.com/go-chi/chi/v5"
)

type RoundHandler struct {
	base
	rounds *service.RoundService
}

func NewRoundHandler(v *view.Renderer, once *service.OnceGuard, rounds *service.RoundService) *RoundHandler {
	return &RoundHandler{base: base{view: v, once: once}, rounds: rounds}
}

func (h *RoundHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.page)
	r.Post("/", h.create)
	r.Post("/generar", h.generate)
	r.Post("/{id}/toggle", h.toggle)
	r.Post("/{id}/puntos", h.savePoints)
	r.Post("/{id}/eliminar", h.remove)
	r.Post("/restaurar", h.restore)
}

type rondasPage struct {
	Rondas  []backend.RondaDetalle
	Pistas  []backend.Pista
	Equipos []backend.Equipo
}

func (h *RoundHandler) page(w http.ResponseWriter, r *http.Request) {
	var flash *common.Flash
	data := rondasPage{}

	rondas, err := h.rounds.ListDetails(r.Context())
	if err != nil {
		if h.sessionExpired(w, r, err) {
			return
		}
		flash = &common.Flash{Kind: "error", Message: "Error al cargar rondas"}
	} else {
		data.Rondas = rondas
	}

	pistas, equipos, err := h.rounds.Options(r.Context())
	if err != nil {
		log.Printf("loading round options: %v", err)
		if flash == nil {
			flash = &common.Flash{Kind: "error", Message: "Error al cargar pistas/equipos"}
		}
	} else {
		data.Pistas = pistas
		data.Equipos = equipos
	}

	if flash == nil {
		flash = common.PopFlash(w, r)
	}
	h.renderFlash(w, r, "rondas", "Rondas", data, flash)
}

func (h *RoundHandler) create(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/rondas"
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	if !h.claimOnce(w, r, backTo) {
		return
	}
	err := h.rounds.Create(r.Context(), backend.CrearRonda{
		Estado:       r.PostFormValue("estado"),
		PistaID:      formInt(r.PostForm, "pistaId"),
		EquipoRojoID: formInt(r.PostForm, "equipoRojoId"),
		EquipoAzulID: formInt(r.PostForm, "equipoAzulId"),
	})
	if err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "success", "Ronda creada")
}

func (h *RoundHandler) generate(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/rondas"
	if !h.claimOnce(w, r, backTo) {
		return
	}
	if err := h.rounds.Generate(r.Context()); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "success", "Rondas generadas exitosamente")
}

func (h *RoundHandler) toggle(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/rondas"
	id, ok := h.roundID(w, r)
	if !ok {
		return
	}
	if !h.claimOnce(w, r, backTo) {
		return
	}
	next, err := h.rounds.Toggle(r.Context(), id)
	if err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	if next == backend.RondaEnCurso {
		h.ok(w, r, backTo, "info", "Ronda iniciada")
		return
	}
	h.ok(w, r, backTo, "info", "Ronda detenida")
}

func (h *RoundHandler) savePoints(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/rondas"
	id, ok := h.roundID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	if !h.claimOnce(w, r, backTo) {
		return
	}

	rojo, errRojo := strconv.Atoi(r.PostFormValue("rojo"))
	azul, errAzul := strconv.Atoi(r.PostFormValue("azul"))
	if errRojo != nil || errAzul != nil {
		h.ok(w, r, backTo, "error", "Los puntos deben ser números enteros")
		return
	}

	if err := h.rounds.SaveScores(r.Context(), id, rojo, azul); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "success", "Puntos ingresados y ronda finalizada")
}

func (h *RoundHandler) remove(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/rondas"
	id, ok := h.roundID(w, r)
	if !ok {
		return
	}
	if !h.claimOnce(w, r, backTo) {
		return
	}
	if err := h.rounds.Remove(r.Context(), id); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "info", "Ronda eliminada")
}

func (h *RoundHandler) restore(w http.ResponseWriter, r *http.Request) {
	const backTo = "/dashboard/rondas"
	id, err := strconv.Atoi(r.PostFormValue("id"))
	if err != nil {
		h.ok(w, r, backTo, "error", "ID inválido")
		return
	}
	if !h.claimOnce(w, r, backTo) {
		return
	}
	if err := h.rounds.Restore(r.Context(), id); err != nil {
		h.fail(w, r, backTo, err)
		return
	}
	h.ok(w, r, backTo, "info", "Ronda restaurada")
}

func (h *RoundHandler) roundID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.ok(w, r, "/dashboard/rondas", "error", "ID inválido")
		return 0, false
	}
	return id, true
}
