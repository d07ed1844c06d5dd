package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sumo_console/internal/backend"
)

type recordedCall struct {
	Method string
	Path   string
	Body   string
}

// scoreBackend is a scripted backend for the scoring workflow: it records
// every call and can be told to fail at a given step.
type scoreBackend struct {
	t          *testing.T
	calls      []recordedCall
	failCreate int // fail the n-th POST /puntajes (1-based), 0 = never
	failFinish bool
	creates    int
	nextID     int
}

func (b *scoreBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.calls = append(b.calls, recordedCall{r.Method, r.URL.Path, string(body)})

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/rondas/5":
			json.NewEncoder(w).Encode(backend.Ronda{
				ID:         5,
				Estado:     backend.RondaEnCurso,
				Pista:      backend.PistaRef{ID: 1, NombrePista: "Pista 1"},
				EquipoRojo: backend.EquipoRef{ID: 10, NombreEquipo: "Rojo FC"},
				EquipoAzul: backend.EquipoRef{ID: 11, NombreEquipo: "Azul FC"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/puntajes":
			b.creates++
			if b.failCreate == b.creates {
				http.Error(w, `{"message":"fallo simulado"}`, http.StatusInternalServerError)
				return
			}
			b.nextID++
			var req backend.CrearPuntaje
			json.Unmarshal(body, &req)
			json.NewEncoder(w).Encode(backend.Puntaje{
				ID: 100 + b.nextID, Puntaje: req.Puntaje, RondaID: req.RondaID, EquipoID: req.EquipoID,
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/rondas/5":
			if b.failFinish {
				http.Error(w, `{"message":"fallo simulado"}`, http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{}`))
		case r.Method == http.MethodDelete:
			w.Write([]byte(`{}`))
		default:
			b.t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func newRoundService(t *testing.T, b *scoreBackend) *RoundService {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	return NewRoundService(backend.New(srv.URL, 5*time.Second))
}

func TestSaveScoresHappyPath(t *testing.T) {
	b := &scoreBackend{t: t}
	svc := newRoundService(t, b)

	if err := svc.SaveScores(context.Background(), 5, 5, 3); err != nil {
		t.Fatalf("SaveScores: %v", err)
	}

	want := []recordedCall{
		{Method: "GET", Path: "/rondas/5"},
		{Method: "POST", Path: "/puntajes"},
		{Method: "POST", Path: "/puntajes"},
		{Method: "PATCH", Path: "/rondas/5"},
	}
	if len(b.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", b.calls, want)
	}
	for i := range want {
		if b.calls[i].Method != want[i].Method || b.calls[i].Path != want[i].Path {
			t.Errorf("call %d = %s %s, want %s %s", i, b.calls[i].Method, b.calls[i].Path, want[i].Method, want[i].Path)
		}
	}

	var rojo, azul backend.CrearPuntaje
	json.Unmarshal([]byte(b.calls[1].Body), &rojo)
	json.Unmarshal([]byte(b.calls[2].Body), &azul)
	if rojo != (backend.CrearPuntaje{Puntaje: 5, RondaID: 5, EquipoID: 10}) {
		t.Errorf("red payload = %+v", rojo)
	}
	if azul != (backend.CrearPuntaje{Puntaje: 3, RondaID: 5, EquipoID: 11}) {
		t.Errorf("blue payload = %+v", azul)
	}

	var patch map[string]any
	json.Unmarshal([]byte(b.calls[3].Body), &patch)
	if patch["estado"] != "finalizada" {
		t.Errorf("finish payload = %v", patch)
	}
}

func TestSaveScoresCompensatesOnBlueFailure(t *testing.T) {
	b := &scoreBackend{t: t, failCreate: 2}
	svc := newRoundService(t, b)

	err := svc.SaveScores(context.Background(), 5, 5, 3)
	if err == nil {
		t.Fatal("SaveScores succeeded, want error")
	}

	// The red score (id 101) must have been deleted again.
	var deletes []string
	for _, c := range b.calls {
		if c.Method == http.MethodDelete {
			deletes = append(deletes, c.Path)
		}
	}
	if len(deletes) != 1 || deletes[0] != "/puntajes/eliminar/101" {
		t.Errorf("deletes = %v, want [/puntajes/eliminar/101]", deletes)
	}
}

func TestSaveScoresCompensatesOnFinishFailure(t *testing.T) {
	b := &scoreBackend{t: t, failFinish: true}
	svc := newRoundService(t, b)

	err := svc.SaveScores(context.Background(), 5, 5, 3)
	if err == nil {
		t.Fatal("SaveScores succeeded, want error")
	}

	var deletes []string
	for _, c := range b.calls {
		if c.Method == http.MethodDelete {
			deletes = append(deletes, c.Path)
		}
	}
	want := map[string]bool{"/puntajes/eliminar/101": true, "/puntajes/eliminar/102": true}
	if len(deletes) != 2 || !want[deletes[0]] || !want[deletes[1]] {
		t.Errorf("deletes = %v, want both created scores removed", deletes)
	}
}

func TestSaveScoresRejectsNegativePoints(t *testing.T) {
	b := &scoreBackend{t: t}
	svc := newRoundService(t, b)

	err := svc.SaveScores(context.Background(), 5, -1, 3)
	if !errors.Is(err, backend.ErrBadRequest) {
		t.Fatalf("err = %v, want ErrBadRequest", err)
	}
	if len(b.calls) != 0 {
		t.Errorf("backend called %d times for invalid input", len(b.calls))
	}
}

func TestToggleFlipsState(t *testing.T) {
	var patched string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(backend.Ronda{ID: 5, Estado: backend.RondaEnCurso})
		case http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			patched = string(body)
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	svc := NewRoundService(backend.New(srv.URL, 5*time.Second))
	next, err := svc.Toggle(context.Background(), 5)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if next != backend.RondaPendiente {
		t.Errorf("next state = %q, want pendiente", next)
	}
	var patch map[string]any
	json.Unmarshal([]byte(patched), &patch)
	if patch["estado"] != backend.RondaPendiente {
		t.Errorf("patch payload = %v", patch)
	}
}
