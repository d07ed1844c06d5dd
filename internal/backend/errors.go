package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource conflict")
	ErrServer       = errors.New("backend error")
)

// errorBody is the shape the backend uses for error payloads. Not every
// endpoint fills both fields.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ErrorFromResponse maps a non-2xx backend response to a sentinel error,
// keeping the backend's human-readable message when it provides one.
func ErrorFromResponse(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	message := eb.Message
	if message == "" {
		message = eb.Error
	}

	sentinel := ErrServer
	switch status {
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = ErrBadRequest
	case http.StatusConflict:
		sentinel = ErrConflict
	}

	if message == "" {
		return fmt.Errorf("backend responded %d: %w", status, sentinel)
	}
	return fmt.Errorf("%s: %w", message, sentinel)
}
