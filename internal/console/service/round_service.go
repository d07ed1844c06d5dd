package service

import (
	"context"
	"fmt"
	"log"

	"sumo_console/internal/backend"
)

type RoundService struct {
	api *backend.Client
}

func NewRoundService(api *backend.Client) *RoundService {
	return &RoundService{api: api}
}

// ListDetails returns the denormalized round list (track and team names
// pre-joined by the backend) for the rounds screen.
func (s *RoundService) ListDetails(ctx context.Context) ([]backend.RondaDetalle, error) {
	return s.api.Rondas.ListDetails(ctx)
}

// Options loads the track and team catalogs for the round-creation form.
func (s *RoundService) Options(ctx context.Context) ([]backend.Pista, []backend.Equipo, error) {
	pistas, err := s.api.Pistas.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading pistas: %w", err)
	}
	equipos, err := s.api.Equipos.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading equipos: %w", err)
	}
	return pistas, equipos, nil
}

func (s *RoundService) Create(ctx context.Context, req backend.CrearRonda) error {
	if req.PistaID == 0 || req.EquipoRojoID == 0 || req.EquipoAzulID == 0 {
		return fmt.Errorf("pista y ambos equipos son obligatorios: %w", backend.ErrBadRequest)
	}
	if req.Estado == "" {
		req.Estado = backend.RondaPendiente
	}
	if _, err := s.api.Rondas.Create(ctx, req); err != nil {
		return fmt.Errorf("creating ronda: %w", err)
	}
	return nil
}

// Generate triggers server-side automatic round generation.
func (s *RoundService) Generate(ctx context.Context) error {
	return s.api.Rondas.Generar(ctx)
}

// Toggle flips a round between pendiente and en_curso and returns the new
// state. No guard stops a finalizada round from being restarted here; the
// screen just never offers the button for one.
func (s *RoundService) Toggle(ctx context.Context, id int) (string, error) {
	ronda, err := s.api.Rondas.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loading ronda %d: %w", id, err)
	}
	next := backend.RondaEnCurso
	if ronda.Estado == backend.RondaEnCurso {
		next = backend.RondaPendiente
	}
	if err := s.api.Rondas.Update(ctx, id, backend.ActualizarRonda{Estado: &next}); err != nil {
		return "", fmt.Errorf("updating ronda %d state: %w", id, err)
	}
	return next, nil
}

func (s *RoundService) UpdateState(ctx context.Context, id int, estado string) error {
	if estado == "" {
		return fmt.Errorf("estado es obligatorio: %w", backend.ErrBadRequest)
	}
	return s.api.Rondas.Update(ctx, id, backend.ActualizarRonda{Estado: &estado})
}

func (s *RoundService) Remove(ctx context.Context, id int) error {
	return s.api.Rondas.Remove(ctx, id)
}

func (s *RoundService) Restore(ctx context.Context, id int) error {
	return s.api.Rondas.Restore(ctx, id)
}

func (s *RoundService) Delete(ctx context.Context, id int) error {
	return s.api.Rondas.Delete(ctx, id)
}

// SaveScores finishes a round: one score record per side, then the state
// flip to finalizada. The three backend calls are not a transaction, so on
// failure the scores created so far are deleted again before reporting, and
// the operator never sees a half-finished round.
func (s *RoundService) SaveScores(ctx context.Context, rondaID, rojo, azul int) error {
	if rojo < 0 || azul < 0 {
		return fmt.Errorf("los puntos no pueden ser negativos: %w", backend.ErrBadRequest)
	}

	ronda, err := s.api.Rondas.Get(ctx, rondaID)
	if err != nil {
		return fmt.Errorf("loading ronda %d: %w", rondaID, err)
	}

	puntajeRojo, err := s.api.Puntajes.Create(ctx, backend.CrearPuntaje{
		Puntaje:  rojo,
		RondaID:  rondaID,
		EquipoID: ronda.EquipoRojo.ID,
	})
	if err != nil {
		return fmt.Errorf("registering red score: %w", err)
	}

	puntajeAzul, err := s.api.Puntajes.Create(ctx, backend.CrearPuntaje{
		Puntaje:  azul,
		RondaID:  rondaID,
		EquipoID: ronda.EquipoAzul.ID,
	})
	if err != nil {
		s.compensate(ctx, puntajeRojo.ID)
		return fmt.Errorf("registering blue score: %w", err)
	}

	estado := backend.RondaFinalizada
	if err := s.api.Rondas.Update(ctx, rondaID, backend.ActualizarRonda{Estado: &estado}); err != nil {
		s.compensate(ctx, puntajeRojo.ID, puntajeAzul.ID)
		return fmt.Errorf("finishing ronda %d: %w", rondaID, err)
	}
	return nil
}

// compensate hard-deletes partially created scores. Best effort: a failed
// compensation is logged, since the original error is what the operator
// needs to see.
func (s *RoundService) compensate(ctx context.Context, puntajeIDs ...int) {
	for _, id := range puntajeIDs {
		if err := s.api.Puntajes.Delete(ctx, id); err != nil {
			log.Printf("compensating puntaje %d failed: %v", id, err)
		}
	}
}
