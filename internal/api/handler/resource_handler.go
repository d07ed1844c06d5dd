package handler

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/common"
	"sumo_console/internal/console/service"

	"github.com/go-chi/chi/v5"
)

// resourceDef describes one CRUD screen: how to list its records as table
// rows and how to translate form posts into backend calls. The screens are
// deliberately uniform; only these closures differ per entity.
type resourceDef struct {
	name    string // path segment, matches the backend resource
	title   string
	fields  []view.FormField
	list    func(ctx context.Context) ([]view.Row, error)
	create  func(ctx context.Context, form url.Values) error
	update  func(ctx context.Context, id int, form url.Values) error
	remove  func(ctx context.Context, id int) error
	restore func(ctx context.Context, id int) error
	destroy func(ctx context.Context, id int) error
	details func(ctx context.Context) (*view.DetailsTable, error)
}

type ResourceHandler struct {
	base
	defs []resourceDef
}

func NewResourceHandler(v *view.Renderer, once *service.OnceGuard, api *backend.Client) *ResourceHandler {
	return &ResourceHandler{
		base: base{view: v, once: once},
		defs: resourceDefs(api),
	}
}

func (h *ResourceHandler) RegisterRoutes(r chi.Router) {
	for _, def := range h.defs {
		def := def
		r.Route("/"+def.name, func(r chi.Router) {
			r.Get("/", h.page(def))
			r.Post("/", h.create(def))
			r.Post("/restaurar", h.restore(def))
			r.Post("/{id}/actualizar", h.update(def))
			r.Post("/{id}/eliminar", h.remove(def))
			r.Post("/{id}/borrar", h.destroy(def))
		})
	}
}

func (h *ResourceHandler) page(def resourceDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var flash *common.Flash

		rows, err := def.list(r.Context())
		if err != nil {
			if h.sessionExpired(w, r, err) {
				return
			}
			// The table renders empty; the operator just sees the banner.
			flash = &common.Flash{Kind: "error", Message: "Error al cargar " + def.title}
			rows = nil
		}

		var details *view.DetailsTable
		if def.details != nil {
			details, err = def.details(r.Context())
			if err != nil {
				log.Printf("loading %s details: %v", def.name, err)
				details = nil
			}
		}

		if flash == nil {
			flash = common.PopFlash(w, r)
		}
		h.renderFlash(w, r, "entity", def.title, view.EntityPage{
			Name:    def.name,
			Fields:  def.fields,
			Rows:    rows,
			Details: details,
		}, flash)
	}
}

func (h *ResourceHandler) create(def resourceDef) http.HandlerFunc {
	backTo := "/dashboard/" + def.name
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.fail(w, r, backTo, err)
			return
		}
		if !h.claimOnce(w, r, backTo) {
			return
		}
		if err := def.create(r.Context(), r.PostForm); err != nil {
			h.fail(w, r, backTo, err)
			return
		}
		h.ok(w, r, backTo, "success", "Registro creado")
	}
}

func (h *ResourceHandler) update(def resourceDef) http.HandlerFunc {
	backTo := "/dashboard/" + def.name
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.recordID(w, r, backTo)
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
		if err := def.update(r.Context(), id, r.PostForm); err != nil {
			h.fail(w, r, backTo, err)
			return
		}
		h.ok(w, r, backTo, "success", "Registro actualizado")
	}
}

func (h *ResourceHandler) remove(def resourceDef) http.HandlerFunc {
	return h.action(def, def.remove, "Registro eliminado", "info")
}

func (h *ResourceHandler) destroy(def resourceDef) http.HandlerFunc {
	return h.action(def, def.destroy, "Registro borrado definitivamente", "info")
}

func (h *ResourceHandler) action(def resourceDef, call func(context.Context, int) error, message, kind string) http.HandlerFunc {
	backTo := "/dashboard/" + def.name
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.recordID(w, r, backTo)
		if !ok {
			return
		}
		if !h.claimOnce(w, r, backTo) {
			return
		}
		if err := call(r.Context(), id); err != nil {
			h.fail(w, r, backTo, err)
			return
		}
		h.ok(w, r, backTo, kind, message)
	}
}

// restore takes its target id from the form, not the path: soft-deleted
// records are absent from the table. Restoring a record that is not deleted
// is passed through untouched; whatever the backend answers, the screen
// just refetches.
func (h *ResourceHandler) restore(def resourceDef) http.HandlerFunc {
	backTo := "/dashboard/" + def.name
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(r.PostFormValue("id"))
		if err != nil {
			h.ok(w, r, backTo, "error", "ID inválido")
			return
		}
		if !h.claimOnce(w, r, backTo) {
			return
		}
		if err := def.restore(r.Context(), id); err != nil {
			h.fail(w, r, backTo, err)
			return
		}
		h.ok(w, r, backTo, "info", "Registro restaurado")
	}
}

func (h *ResourceHandler) recordID(w http.ResponseWriter, r *http.Request, backTo string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.ok(w, r, backTo, "error", "ID inválido")
		return 0, false
	}
	return id, true
}

func formPtr(form url.Values, key string) *string {
	v := form.Get(key)
	return &v
}

func formInt(form url.Values, key string) int {
	n, _ := strconv.Atoi(form.Get(key))
	return n
}

func formIntPtr(form url.Values, key string) *int {
	n := formInt(form, key)
	return &n
}

func resourceDefs(api *backend.Client) []resourceDef {
	return []resourceDef{
		{
			name:  "participantes",
			title: "Participantes",
			fields: []view.FormField{
				{Name: "nombreCompleto", Label: "Nombre completo", Type: "text"},
				{Name: "carnetIdentidad", Label: "Carnet de identidad", Type: "text"},
				{Name: "fechaNacimiento", Label: "Fecha de nacimiento", Type: "date"},
				{Name: "departamento", Label: "Departamento", Type: "text"},
				{Name: "provincia", Label: "Provincia", Type: "text"},
				{Name: "municipio", Label: "Municipio", Type: "text"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.Participantes.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, p := range records {
					rows = append(rows, view.Row{ID: p.ID, Values: []string{
						p.NombreCompleto, p.CarnetIdentidad, p.FechaNacimiento,
						p.Departamento, p.Provincia, p.Municipio,
					}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.Participantes.Create(ctx, backend.CrearParticipante{
					NombreCompleto:  form.Get("nombreCompleto"),
					CarnetIdentidad: form.Get("carnetIdentidad"),
					FechaNacimiento: form.Get("fechaNacimiento"),
					Departamento:    form.Get("departamento"),
					Provincia:       form.Get("provincia"),
					Municipio:       form.Get("municipio"),
				})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				return api.Participantes.Update(ctx, id, backend.ActualizarParticipante{
					NombreCompleto:  formPtr(form, "nombreCompleto"),
					CarnetIdentidad: formPtr(form, "carnetIdentidad"),
					FechaNacimiento: formPtr(form, "fechaNacimiento"),
					Departamento:    formPtr(form, "departamento"),
					Provincia:       formPtr(form, "provincia"),
					Municipio:       formPtr(form, "municipio"),
				})
			},
			remove:  api.Participantes.Remove,
			restore: api.Participantes.Restore,
			destroy: api.Participantes.Delete,
		},
		{
			name:  "tutores",
			title: "Tutores",
			fields: []view.FormField{
				{Name: "nombreCompleto", Label: "Nombre completo", Type: "text"},
				{Name: "carnetIdentidad", Label: "Carnet de identidad", Type: "text"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.Tutores.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, t := range records {
					rows = append(rows, view.Row{ID: t.ID, Values: []string{t.NombreCompleto, t.CarnetIdentidad}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.Tutores.Create(ctx, backend.CrearTutor{
					NombreCompleto:  form.Get("nombreCompleto"),
					CarnetIdentidad: form.Get("carnetIdentidad"),
				})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				return api.Tutores.Update(ctx, id, backend.ActualizarTutor{
					NombreCompleto:  formPtr(form, "nombreCompleto"),
					CarnetIdentidad: formPtr(form, "carnetIdentidad"),
				})
			},
			remove:  api.Tutores.Remove,
			restore: api.Tutores.Restore,
			destroy: api.Tutores.Delete,
		},
		{
			name:  "equipos",
			title: "Equipos",
			fields: []view.FormField{
				{Name: "nombreEquipo", Label: "Nombre del equipo", Type: "text"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.Equipos.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, e := range records {
					rows = append(rows, view.Row{ID: e.ID, Values: []string{e.NombreEquipo}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.Equipos.Create(ctx, backend.CrearEquipo{NombreEquipo: form.Get("nombreEquipo")})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				return api.Equipos.Update(ctx, id, backend.ActualizarEquipo{NombreEquipo: formPtr(form, "nombreEquipo")})
			},
			remove:  api.Equipos.Remove,
			restore: api.Equipos.Restore,
			destroy: api.Equipos.Delete,
			details: func(ctx context.Context) (*view.DetailsTable, error) {
				records, err := api.Equipos.ListDetails(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(records))
				for _, d := range records {
					rows = append(rows, []string{strconv.Itoa(d.ID), d.NombreEquipo, d.Participantes, d.Tutores})
				}
				return &view.DetailsTable{
					Title:   "Equipos con integrantes",
					Columns: []string{"ID", "Equipo", "Participantes", "Tutores"},
					Rows:    rows,
				}, nil
			},
		},
		{
			name:  "equiposParticipantes",
			title: "Asignación Equipo-Participante",
			fields: []view.FormField{
				{Name: "equipoId", Label: "Equipo (ID)", Type: "number"},
				{Name: "participanteId", Label: "Participante (ID)", Type: "number"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.EquiposParticipantes.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, ep := range records {
					rows = append(rows, view.Row{ID: ep.ID, Values: []string{
						strconv.Itoa(ep.EquipoID), strconv.Itoa(ep.ParticipanteID),
					}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.EquiposParticipantes.Create(ctx, backend.CrearEquipoParticipante{
					EquipoID:       formInt(form, "equipoId"),
					ParticipanteID: formInt(form, "participanteId"),
				})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				return api.EquiposParticipantes.Update(ctx, id, backend.ActualizarEquipoParticipante{
					Equipo:       formIntPtr(form, "equipoId"),
					Participante: formIntPtr(form, "participanteId"),
				})
			},
			remove:  api.EquiposParticipantes.Remove,
			restore: api.EquiposParticipantes.Restore,
			destroy: api.EquiposParticipantes.Delete,
		},
		{
			name:  "pistas",
			title: "Pistas",
			fields: []view.FormField{
				{Name: "nombrePista", Label: "Nombre de la pista", Type: "text"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.Pistas.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, p := range records {
					rows = append(rows, view.Row{ID: p.ID, Values: []string{p.NombrePista}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.Pistas.Create(ctx, backend.CrearPista{NombrePista: form.Get("nombrePista")})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				return api.Pistas.Update(ctx, id, backend.ActualizarPista{NombrePista: formPtr(form, "nombrePista")})
			},
			remove:  api.Pistas.Remove,
			restore: api.Pistas.Restore,
			destroy: api.Pistas.Delete,
		},
		{
			name:  "puntajes",
			title: "Puntajes",
			fields: []view.FormField{
				{Name: "puntaje", Label: "Puntaje", Type: "number"},
				{Name: "rondaId", Label: "Ronda (ID)", Type: "number"},
				{Name: "equipoId", Label: "Equipo (ID)", Type: "number"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.Puntajes.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, p := range records {
					rows = append(rows, view.Row{ID: p.ID, Values: []string{
						strconv.Itoa(p.Puntaje), strconv.Itoa(p.RondaID), strconv.Itoa(p.EquipoID),
					}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.Puntajes.Create(ctx, backend.CrearPuntaje{
					Puntaje:  formInt(form, "puntaje"),
					RondaID:  formInt(form, "rondaId"),
					EquipoID: formInt(form, "equipoId"),
				})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				return api.Puntajes.Update(ctx, id, backend.ActualizarPuntaje{
					Puntaje: formIntPtr(form, "puntaje"),
					Ronda:   formIntPtr(form, "rondaId"),
					Equipo:  formIntPtr(form, "equipoId"),
				})
			},
			remove:  api.Puntajes.Remove,
			restore: api.Puntajes.Restore,
			destroy: api.Puntajes.Delete,
			details: func(ctx context.Context) (*view.DetailsTable, error) {
				records, err := api.Puntajes.ListDetails(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([][]string, 0, len(records))
				for _, d := range records {
					rows = append(rows, []string{
						strconv.Itoa(d.ID), d.Participante, strconv.Itoa(d.Puntaje),
						d.Departamento, d.Provincia, d.Municipio,
					})
				}
				return &view.DetailsTable{
					Title:   "Puntajes con detalle",
					Columns: []string{"ID", "Participante", "Puntaje", "Departamento", "Provincia", "Municipio"},
					Rows:    rows,
				}, nil
			},
		},
		{
			name:  "usuarios",
			title: "Usuarios",
			fields: []view.FormField{
				{Name: "username", Label: "Usuario", Type: "text"},
				{Name: "email", Label: "Correo", Type: "email"},
				{Name: "password", Label: "Contraseña", Type: "password"},
				{Name: "rol", Label: "Rol", Type: "text"},
			},
			list: func(ctx context.Context) ([]view.Row, error) {
				records, err := api.Usuarios.List(ctx)
				if err != nil {
					return nil, err
				}
				rows := make([]view.Row, 0, len(records))
				for _, u := range records {
					// Password column stays blank; filling it on edit sets a new one.
					rows = append(rows, view.Row{ID: u.ID, Values: []string{u.Username, u.Email, "", u.Rol}})
				}
				return rows, nil
			},
			create: func(ctx context.Context, form url.Values) error {
				_, err := api.Usuarios.Create(ctx, backend.CrearUsuario{
					Username: form.Get("username"),
					Email:    form.Get("email"),
					Password: form.Get("password"),
					Rol:      form.Get("rol"),
				})
				return err
			},
			update: func(ctx context.Context, id int, form url.Values) error {
				req := backend.ActualizarUsuario{
					Username: formPtr(form, "username"),
					Email:    formPtr(form, "email"),
					Rol:      formPtr(form, "rol"),
				}
				if pw := form.Get("password"); pw != "" {
					req.Password = &pw
				}
				return api.Usuarios.Update(ctx, id, req)
			},
			remove:  api.Usuarios.Remove,
			restore: api.Usuarios.Restore,
			destroy: api.Usuarios.Delete,
		},
	}
}
