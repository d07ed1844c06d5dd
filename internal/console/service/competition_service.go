package service

import (
	"context"
	"fmt"

	"sumo_console/internal/backend"
)

type CompetitionService struct {
	api   *backend.Client
	store ConsoleStore
}

func NewCompetitionService(api *backend.Client, store ConsoleStore) *CompetitionService {
	return &CompetitionService{api: api, store: store}
}

// Status reports the persisted competition flag, the last ranking snapshot
// and the saved settings, so the configuration screen reflects reality even
// after a reload.
func (s *CompetitionService) Status(ctx context.Context) (bool, []backend.Clasificado, Settings, error) {
	competing, err := s.store.Competing(ctx)
	if err != nil {
		return false, nil, Settings{}, err
	}
	ranking, err := s.store.Ranking(ctx)
	if err != nil {
		return false, nil, Settings{}, err
	}
	settings, found, err := s.store.LoadSettings(ctx)
	if err != nil {
		return false, nil, Settings{}, err
	}
	if !found {
		settings = Settings{NumeroClasificados: 3, NumeroPistas: 4}
	}
	return competing, ranking, settings, nil
}

func (s *CompetitionService) Start(ctx context.Context) error {
	if err := s.api.Competencia.Iniciar(ctx); err != nil {
		return fmt.Errorf("starting competition: %w", err)
	}
	return s.store.SetCompeting(ctx, true)
}

// Stop issues a single detener call and keeps its response as the top-N
// ranking snapshot (the backend computes the ranking at stop time).
func (s *CompetitionService) Stop(ctx context.Context) ([]backend.Clasificado, error) {
	ranking, err := s.api.Competencia.Detener(ctx)
	if err != nil {
		return nil, fmt.Errorf("stopping competition: %w", err)
	}
	if err := s.store.SaveRanking(ctx, ranking); err != nil {
		return ranking, err
	}
	if err := s.store.SetCompeting(ctx, false); err != nil {
		return ranking, err
	}
	return ranking, nil
}

func (s *CompetitionService) SaveSettings(ctx context.Context, cfg Settings) error {
	if cfg.NumeroClasificados < 1 || cfg.NumeroClasificados > 100 {
		return fmt.Errorf("número de clasificados debe estar entre 1 y 100: %w", backend.ErrBadRequest)
	}
	if cfg.NumeroPistas < 1 || cfg.NumeroPistas > 50 {
		return fmt.Errorf("número de pistas debe estar entre 1 y 50: %w", backend.ErrBadRequest)
	}
	return s.store.SaveSettings(ctx, cfg)
}
