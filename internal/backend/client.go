package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const tokenCtxKey contextKey = "bearerToken"

// WithToken returns a context carrying the operator's bearer token. Every
// outgoing request made with that context attaches it as
// "Authorization: Bearer <token>"; requests without one go out anonymous.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey).(string)
	return token, ok && token != ""
}

// Client talks to the competition backend. It holds no state beyond the
// base address: no caching, no retries, no dedup of in-flight requests.
type Client struct {
	baseURL    string
	httpClient *http.Client

	Auth                 AuthAPI
	Participantes        ParticipantesAPI
	Tutores              TutoresAPI
	Equipos              EquiposAPI
	EquiposParticipantes EquiposParticipantesAPI
	Pistas               PistasAPI
	Puntajes             PuntajesAPI
	Rondas               RondasAPI
	Usuarios             UsuariosAPI
	Competencia          CompetenciaAPI
}

func New(baseURL string, timeout time.Duration) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	c.Auth = AuthAPI{c}
	c.Participantes = ParticipantesAPI{c}
	c.Tutores = TutoresAPI{c}
	c.Equipos = EquiposAPI{c}
	c.EquiposParticipantes = EquiposParticipantesAPI{c}
	c.Pistas = PistasAPI{c}
	c.Puntajes = PuntajesAPI{c}
	c.Rondas = RondasAPI{c}
	c.Usuarios = UsuariosAPI{c}
	c.Competencia = CompetenciaAPI{c}
	return c
}

// request performs one HTTP call and returns the raw response body.
// Non-2xx statuses come back as sentinel errors (see errors.go).
func (c *Client) request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrorFromResponse(resp.StatusCode, data))
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := c.request(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) patchJSON(ctx context.Context, path string, body, out any) error {
	data, err := c.request(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}
	return decodeInto(path, data, out)
}

func (c *Client) deleteReq(ctx context.Context, path string) error {
	_, err := c.request(ctx, http.MethodDelete, path, nil)
	return err
}

// listJSON fetches a collection. The backend is inconsistent about list
// shapes: some resources answer with a bare array, others wrap the array at
// index 0 of an outer array. Both decode to the same slice here so callers
// see a single contract.
func (c *Client) listJSON(ctx context.Context, path string, out any) error {
	data, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeList(path, data, out)
}

func decodeInto(path string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func decodeList(path string, data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return fmt.Errorf("decoding %s list response: %w", path, err)
	}
	// Envelope shape: the first element is itself the array of records.
	if len(elems) > 0 {
		if first := bytes.TrimSpace(elems[0]); len(first) > 0 && first[0] == '[' {
			return decodeInto(path, first, out)
		}
	}
	return decodeInto(path, trimmed, out)
}
