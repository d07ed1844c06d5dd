package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// One API struct per backend resource, one method per operation. Paths are
// the backend's own Spanish route surface and must not drift: the service is
// the single source of truth for them.

// =======================
// AUTH
// =======================

type AuthAPI struct{ c *Client }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The backend answers with
// the token as the whole body, either bare or JSON-quoted.
func (a AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	data, err := a.c.request(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	token := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if token == "" {
		return "", fmt.Errorf("login: %w", ErrServer)
	}
	return token, nil
}

// =======================
// PARTICIPANTES
// =======================

type ParticipantesAPI struct{ c *Client }

func (a ParticipantesAPI) List(ctx context.Context) ([]Participante, error) {
	var out []Participante
	err := a.c.listJSON(ctx, "/participantes", &out)
	return out, err
}

func (a ParticipantesAPI) Get(ctx context.Context, id int) (Participante, error) {
	var out Participante
	err := a.c.getJSON(ctx, "/participantes/"+strconv.Itoa(id), &out)
	return out, err
}

func (a ParticipantesAPI) Create(ctx context.Context, req CrearParticipante) (Participante, error) {
	var out Participante
	err := a.c.postJSON(ctx, "/participantes", req, &out)
	return out, err
}

func (a ParticipantesAPI) Update(ctx context.Context, id int, req ActualizarParticipante) error {
	return a.c.patchJSON(ctx, "/participantes/"+strconv.Itoa(id), req, nil)
}

func (a ParticipantesAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/participantes/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a ParticipantesAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/participantes/restore/"+strconv.Itoa(id), nil, nil)
}

func (a ParticipantesAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/participantes/eliminar/"+strconv.Itoa(id))
}

// =======================
// TUTORES
// =======================

type TutoresAPI struct{ c *Client }

func (a TutoresAPI) List(ctx context.Context) ([]Tutor, error) {
	var out []Tutor
	err := a.c.listJSON(ctx, "/tutores", &out)
	return out, err
}

func (a TutoresAPI) Get(ctx context.Context, id int) (Tutor, error) {
	var out Tutor
	err := a.c.getJSON(ctx, "/tutores/"+strconv.Itoa(id), &out)
	return out, err
}

func (a TutoresAPI) Create(ctx context.Context, req CrearTutor) (Tutor, error) {
	var out Tutor
	err := a.c.postJSON(ctx, "/tutores", req, &out)
	return out, err
}

func (a TutoresAPI) Update(ctx context.Context, id int, req ActualizarTutor) error {
	return a.c.patchJSON(ctx, "/tutores/"+strconv.Itoa(id), req, nil)
}

func (a TutoresAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/tutores/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a TutoresAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/tutores/restore/"+strconv.Itoa(id), nil, nil)
}

func (a TutoresAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/tutores/eliminar/"+strconv.Itoa(id))
}

// =======================
// EQUIPOS
// =======================

type EquiposAPI struct{ c *Client }

func (a EquiposAPI) List(ctx context.Context) ([]Equipo, error) {
	var out []Equipo
	err := a.c.listJSON(ctx, "/equipos", &out)
	return out, err
}

func (a EquiposAPI) ListDetails(ctx context.Context) ([]EquipoDetalle, error) {
	var out []EquipoDetalle
	err := a.c.listJSON(ctx, "/equipos/details", &out)
	return out, err
}

func (a EquiposAPI) Get(ctx context.Context, id int) (Equipo, error) {
	var out Equipo
	err := a.c.getJSON(ctx, "/equipos/"+strconv.Itoa(id), &out)
	return out, err
}

func (a EquiposAPI) Create(ctx context.Context, req CrearEquipo) (Equipo, error) {
	var out Equipo
	err := a.c.postJSON(ctx, "/equipos", req, &out)
	return out, err
}

func (a EquiposAPI) Update(ctx context.Context, id int, req ActualizarEquipo) error {
	return a.c.patchJSON(ctx, "/equipos/"+strconv.Itoa(id), req, nil)
}

func (a EquiposAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/equipos/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a EquiposAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/equipos/restore/"+strconv.Itoa(id), nil, nil)
}

func (a EquiposAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/equipos/eliminar/"+strconv.Itoa(id))
}

// =======================
// EQUIPOS PARTICIPANTES
// =======================

type EquiposParticipantesAPI struct{ c *Client }

func (a EquiposParticipantesAPI) List(ctx context.Context) ([]EquipoParticipante, error) {
	var out []EquipoParticipante
	err := a.c.listJSON(ctx, "/equiposParticipantes", &out)
	return out, err
}

func (a EquiposParticipantesAPI) Get(ctx context.Context, id int) (EquipoParticipante, error) {
	var out EquipoParticipante
	err := a.c.getJSON(ctx, "/equiposParticipantes/"+strconv.Itoa(id), &out)
	return out, err
}

func (a EquiposParticipantesAPI) Create(ctx context.Context, req CrearEquipoParticipante) (EquipoParticipante, error) {
	var out EquipoParticipante
	err := a.c.postJSON(ctx, "/equiposParticipantes", req, &out)
	return out, err
}

func (a EquiposParticipantesAPI) Update(ctx context.Context, id int, req ActualizarEquipoParticipante) error {
	return a.c.patchJSON(ctx, "/equiposParticipantes/"+strconv.Itoa(id), req, nil)
}

func (a EquiposParticipantesAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/equiposParticipantes/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a EquiposParticipantesAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/equiposParticipantes/restore/"+strconv.Itoa(id), nil, nil)
}

func (a EquiposParticipantesAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/equiposParticipantes/eliminar/"+strconv.Itoa(id))
}

// =======================
// PISTAS
// =======================

type PistasAPI struct{ c *Client }

func (a PistasAPI) List(ctx context.Context) ([]Pista, error) {
	var out []Pista
	err := a.c.listJSON(ctx, "/pistas", &out)
	return out, err
}

func (a PistasAPI) Get(ctx context.Context, id int) (Pista, error) {
	var out Pista
	err := a.c.getJSON(ctx, "/pistas/"+strconv.Itoa(id), &out)
	return out, err
}

func (a PistasAPI) Create(ctx context.Context, req CrearPista) (Pista, error) {
	var out Pista
	err := a.c.postJSON(ctx, "/pistas", req, &out)
	return out, err
}

func (a PistasAPI) Update(ctx context.Context, id int, req ActualizarPista) error {
	return a.c.patchJSON(ctx, "/pistas/"+strconv.Itoa(id), req, nil)
}

func (a PistasAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/pistas/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a PistasAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/pistas/restore/"+strconv.Itoa(id), nil, nil)
}

func (a PistasAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/pistas/eliminar/"+strconv.Itoa(id))
}

// =======================
// PUNTAJES
// =======================

type PuntajesAPI struct{ c *Client }

func (a PuntajesAPI) List(ctx context.Context) ([]Puntaje, error) {
	var out []Puntaje
	err := a.c.listJSON(ctx, "/puntajes", &out)
	return out, err
}

func (a PuntajesAPI) ListDetails(ctx context.Context) ([]PuntajeDetalle, error) {
	var out []PuntajeDetalle
	err := a.c.listJSON(ctx, "/puntajes/details", &out)
	return out, err
}

func (a PuntajesAPI) Get(ctx context.Context, id int) (Puntaje, error) {
	var out Puntaje
	err := a.c.getJSON(ctx, "/puntajes/"+strconv.Itoa(id), &out)
	return out, err
}

func (a PuntajesAPI) Create(ctx context.Context, req CrearPuntaje) (Puntaje, error) {
	var out Puntaje
	err := a.c.postJSON(ctx, "/puntajes", req, &out)
	return out, err
}

func (a PuntajesAPI) Update(ctx context.Context, id int, req ActualizarPuntaje) error {
	return a.c.patchJSON(ctx, "/puntajes/"+strconv.Itoa(id), req, nil)
}

func (a PuntajesAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/puntajes/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a PuntajesAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/puntajes/restore/"+strconv.Itoa(id), nil, nil)
}

func (a PuntajesAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/puntajes/eliminar/"+strconv.Itoa(id))
}

// =======================
// RONDAS
// =======================

type RondasAPI struct{ c *Client }

func (a RondasAPI) List(ctx context.Context) ([]Ronda, error) {
	var out []Ronda
	err := a.c.listJSON(ctx, "/rondas", &out)
	return out, err
}

func (a RondasAPI) ListDetails(ctx context.Context) ([]RondaDetalle, error) {
	var out []RondaDetalle
	err := a.c.listJSON(ctx, "/rondas/details", &out)
	return out, err
}

func (a RondasAPI) Get(ctx context.Context, id int) (Ronda, error) {
	var out Ronda
	err := a.c.getJSON(ctx, "/rondas/"+strconv.Itoa(id), &out)
	return out, err
}

func (a RondasAPI) Create(ctx context.Context, req CrearRonda) (Ronda, error) {
	var out Ronda
	err := a.c.postJSON(ctx, "/rondas", req, &out)
	return out, err
}

func (a RondasAPI) Update(ctx context.Context, id int, req ActualizarRonda) error {
	return a.c.patchJSON(ctx, "/rondas/"+strconv.Itoa(id), req, nil)
}

func (a RondasAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/rondas/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a RondasAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/rondas/restore/"+strconv.Itoa(id), nil, nil)
}

func (a RondasAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/rondas/eliminar/"+strconv.Itoa(id))
}

// Generar asks the backend to build rounds itself, randomly pairing
// participants into two-robot teams per track slot. The pairing algorithm
// is entirely server-side.
func (a RondasAPI) Generar(ctx context.Context) error {
	return a.c.postJSON(ctx, "/rondas/generar", nil, nil)
}

// =======================
// USUARIOS
// =======================

type UsuariosAPI struct{ c *Client }

func (a UsuariosAPI) List(ctx context.Context) ([]Usuario, error) {
	var out []Usuario
	err := a.c.listJSON(ctx, "/usuarios", &out)
	return out, err
}

func (a UsuariosAPI) Get(ctx context.Context, id int) (Usuario, error) {
	var out Usuario
	err := a.c.getJSON(ctx, "/usuarios/"+strconv.Itoa(id), &out)
	return out, err
}

func (a UsuariosAPI) Create(ctx context.Context, req CrearUsuario) (Usuario, error) {
	var out Usuario
	err := a.c.postJSON(ctx, "/usuarios", req, &out)
	return out, err
}

func (a UsuariosAPI) Update(ctx context.Context, id int, req ActualizarUsuario) error {
	return a.c.patchJSON(ctx, "/usuarios/"+strconv.Itoa(id), req, nil)
}

func (a UsuariosAPI) Remove(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/usuarios/soft-delete/"+strconv.Itoa(id), nil, nil)
}

func (a UsuariosAPI) Restore(ctx context.Context, id int) error {
	return a.c.patchJSON(ctx, "/usuarios/restore/"+strconv.Itoa(id), nil, nil)
}

func (a UsuariosAPI) Delete(ctx context.Context, id int) error {
	return a.c.deleteReq(ctx, "/usuarios/eliminar/"+strconv.Itoa(id))
}

// =======================
// COMPETENCIA
// =======================

type CompetenciaAPI struct{ c *Client }

func (a CompetenciaAPI) Iniciar(ctx context.Context) error {
	return a.c.postJSON(ctx, "/competencia/iniciar", nil, nil)
}

// Detener stops the competition. The response body is the top-N ranking
// snapshot computed by the backend at the moment of stopping.
func (a CompetenciaAPI) Detener(ctx context.Context) ([]Clasificado, error) {
	data, err := a.c.request(ctx, http.MethodPost, "/competencia/detener", nil)
	if err != nil {
		return nil, err
	}
	var out []Clasificado
	if err := decodeList("/competencia/detener", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
