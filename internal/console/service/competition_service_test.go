package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sumo_console/internal/backend"
)

// memStore is an in-memory ConsoleStore for tests.
type memStore struct {
	competing bool
	ranking   []backend.Clasificado
	settings  *Settings
	claimed   map[string]bool
}

func newMemStore() *memStore {
	return &memStore{claimed: map[string]bool{}}
}

func (m *memStore) SetCompeting(ctx context.Context, competing bool) error {
	m.competing = competing
	return nil
}

func (m *memStore) Competing(ctx context.Context) (bool, error) { return m.competing, nil }

func (m *memStore) SaveRanking(ctx context.Context, ranking []backend.Clasificado) error {
	m.ranking = ranking
	return nil
}

func (m *memStore) Ranking(ctx context.Context) ([]backend.Clasificado, error) {
	return m.ranking, nil
}

func (m *memStore) SaveSettings(ctx context.Context, s Settings) error {
	m.settings = &s
	return nil
}

func (m *memStore) LoadSettings(ctx context.Context) (Settings, bool, error) {
	if m.settings == nil {
		return Settings{}, false, nil
	}
	return *m.settings, true, nil
}

func (m *memStore) ClaimOnce(ctx context.Context, token string) (bool, error) {
	if m.claimed[token] {
		return false, nil
	}
	m.claimed[token] = true
	return true, nil
}

type competitionBackend struct {
	iniciar, detener int
}

func (b *competitionBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/competencia/iniciar":
			b.iniciar++
			w.Write([]byte(`{}`))
		case "/competencia/detener":
			b.detener++
			json.NewEncoder(w).Encode([]backend.Clasificado{
				{ID: 1, NombreCompleto: "Ana Quispe", PuntajeTotal: 9, Equipo: "Alfa"},
				{ID: 2, NombreCompleto: "Luis Mamani", PuntajeTotal: 7, Equipo: "Beta"},
			})
		default:
			http.NotFound(w, r)
		}
	}
}

func newCompetitionService(t *testing.T, b *competitionBackend, store ConsoleStore) *CompetitionService {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return NewCompetitionService(backend.New(srv.URL, 5*time.Second), store)
}

func TestStopCallsDetenerExactlyOnce(t *testing.T) {
	b := &competitionBackend{}
	store := newMemStore()
	store.competing = true
	svc := newCompetitionService(t, b, store)

	ranking, err := svc.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if b.detener != 1 {
		t.Errorf("detener called %d times, want exactly 1", b.detener)
	}
	if len(ranking) != 2 || ranking[0].NombreCompleto != "Ana Quispe" {
		t.Errorf("ranking = %+v", ranking)
	}
	if store.competing {
		t.Error("competing flag still set after stop")
	}
	if len(store.ranking) != 2 {
		t.Errorf("snapshot not persisted: %+v", store.ranking)
	}
}

func TestStartNeverFetchesRanking(t *testing.T) {
	b := &competitionBackend{}
	store := newMemStore()
	svc := newCompetitionService(t, b, store)

	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if b.iniciar != 1 {
		t.Errorf("iniciar called %d times, want 1", b.iniciar)
	}
	if b.detener != 0 {
		t.Errorf("detener called %d times on start, want 0", b.detener)
	}
	if !store.competing {
		t.Error("competing flag not set after start")
	}
}

func TestStatusSurvivesReload(t *testing.T) {
	b := &competitionBackend{}
	store := newMemStore()
	svc := newCompetitionService(t, b, store)

	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// A fresh service over the same store sees the same flag, like a page
	// reload would.
	svc2 := NewCompetitionService(nil, store)
	competing, _, settings, err := svc2.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !competing {
		t.Error("competing flag lost across services")
	}
	if settings.NumeroClasificados != 3 || settings.NumeroPistas != 4 {
		t.Errorf("default settings = %+v", settings)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	store := newMemStore()
	svc := NewCompetitionService(nil, store)
	ctx := context.Background()

	cases := []struct {
		cfg Settings
		ok  bool
	}{
		{Settings{NumeroClasificados: 3, NumeroPistas: 4}, true},
		{Settings{NumeroClasificados: 0, NumeroPistas: 4}, false},
		{Settings{NumeroClasificados: 101, NumeroPistas: 4}, false},
		{Settings{NumeroClasificados: 3, NumeroPistas: 0}, false},
		{Settings{NumeroClasificados: 3, NumeroPistas: 51}, false},
	}
	for _, tc := range cases {
		err := svc.SaveSettings(ctx, tc.cfg)
		if tc.ok && err != nil {
			t.Errorf("SaveSettings(%+v): %v", tc.cfg, err)
		}
		if !tc.ok && !errors.Is(err, backend.ErrBadRequest) {
			t.Errorf("SaveSettings(%+v) = %v, want ErrBadRequest", tc.cfg, err)
		}
	}

	saved, found, _ := store.LoadSettings(ctx)
	if !found || saved.NumeroClasificados != 3 {
		t.Errorf("persisted settings = %+v found=%v", saved, found)
	}
}

func TestOnceGuardRejectsSecondClaim(t *testing.T) {
	guard := NewOnceGuard(newMemStore())
	ctx := context.Background()

	token := guard.Issue()
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if !guard.Claim(ctx, token) {
		t.Error("first claim rejected")
	}
	if guard.Claim(ctx, token) {
		t.Error("second claim accepted")
	}
	if guard.Claim(ctx, "") {
		t.Error("empty token accepted")
	}
}
