package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestBearerAttachment(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	ctx := WithToken(context.Background(), "abc123")
	if _, err := c.Participantes.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc123")
	}

	if _, err := c.Participantes.List(context.Background()); err != nil {
		t.Fatalf("List without token: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization without token = %q, want empty", gotAuth)
	}
}

func TestListEnvelopeNormalization(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":1,"nombreCompleto":"Ana"},{"id":2,"nombreCompleto":"Luis"}]`},
		{"array at index 0", `[[{"id":1,"nombreCompleto":"Ana"},{"id":2,"nombreCompleto":"Luis"}]]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			})
			got, err := c.Participantes.List(context.Background())
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("len = %d, want 2", len(got))
			}
			if got[0].ID != 1 || got[0].NombreCompleto != "Ana" {
				t.Errorf("first record = %+v", got[0])
			}
		})
	}
}

func TestListEmptyResponses(t *testing.T) {
	for _, body := range []string{`[]`, `[[]]`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		got, err := c.Equipos.List(context.Background())
		if err != nil {
			t.Fatalf("List(%s): %v", body, err)
		}
		if len(got) != 0 {
			t.Errorf("List(%s) = %v, want empty", body, got)
		}
	}
}

func TestCRUDPaths(t *testing.T) {
	type call struct{ method, path string }
	var got call
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = call{r.Method, r.URL.Path}
		// Collection endpoints answer arrays, record endpoints objects.
		switch {
		case r.URL.Path == "/competencia/detener",
			r.Method == http.MethodGet && !strings.HasSuffix(r.URL.Path, "/7"):
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`{}`))
		}
	})
	ctx := context.Background()

	steps := []struct {
		name string
		do   func() error
		want call
	}{
		{"list", func() error { _, err := c.Tutores.List(ctx); return err }, call{"GET", "/tutores"}},
		{"get", func() error { _, err := c.Tutores.Get(ctx, 7); return err }, call{"GET", "/tutores/7"}},
		{"create", func() error { _, err := c.Tutores.Create(ctx, CrearTutor{NombreCompleto: "x"}); return err }, call{"POST", "/tutores"}},
		{"update", func() error { return c.Tutores.Update(ctx, 7, ActualizarTutor{}) }, call{"PATCH", "/tutores/7"}},
		{"remove", func() error { return c.Tutores.Remove(ctx, 7) }, call{"PATCH", "/tutores/soft-delete/7"}},
		{"restore", func() error { return c.Tutores.Restore(ctx, 7) }, call{"PATCH", "/tutores/restore/7"}},
		{"delete", func() error { return c.Tutores.Delete(ctx, 7) }, call{"DELETE", "/tutores/eliminar/7"}},
		{"equipos details", func() error { _, err := c.Equipos.ListDetails(ctx); return err }, call{"GET", "/equipos/details"}},
		{"puntajes details", func() error { _, err := c.Puntajes.ListDetails(ctx); return err }, call{"GET", "/puntajes/details"}},
		{"rondas details", func() error { _, err := c.Rondas.ListDetails(ctx); return err }, call{"GET", "/rondas/details"}},
		{"rondas generar", func() error { return c.Rondas.Generar(ctx) }, call{"POST", "/rondas/generar"}},
		{"competencia iniciar", func() error { return c.Competencia.Iniciar(ctx) }, call{"POST", "/competencia/iniciar"}},
		{"competencia detener", func() error { _, err := c.Competencia.Detener(ctx); return err }, call{"POST", "/competencia/detener"}},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if got != s.want {
			t.Errorf("%s: called %s %s, want %s %s", s.name, got.method, got.path, s.want.method, s.want.path)
		}
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expirado"}`, http.StatusUnauthorized)
	})
	_, err := c.Rondas.List(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestErrorKeepsBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"equipo duplicado"}`, http.StatusConflict)
	})
	_, err := c.Equipos.Create(context.Background(), CrearEquipo{NombreEquipo: "Alfa"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if want := "equipo duplicado"; err == nil || !strings.Contains(err.Error(), want) {
		t.Errorf("err = %v, want message %q", err, want)
	}
}

func TestLoginTokenShapes(t *testing.T) {
	for _, body := range []string{"abc123", `"abc123"`, "abc123\n"} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
				t.Errorf("login hit %s %s", r.Method, r.URL.Path)
			}
			w.Write([]byte(body))
		})
		token, err := c.Auth.Login(context.Background(), "a@x.com", "secret")
		if err != nil {
			t.Fatalf("Login(%q): %v", body, err)
		}
		if token != "abc123" {
			t.Errorf("Login(%q) = %q, want abc123", body, token)
		}
	}
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"credenciales incorrectas"}`, http.StatusUnauthorized)
	})
	_, err := c.Auth.Login(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
