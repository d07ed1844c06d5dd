package service

import (
	"context"
	"fmt"

	"sumo_console/internal/backend"
)

type AuthService struct {
	api *backend.Client
}

func NewAuthService(api *backend.Client) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for the backend's bearer token. The token is
// opaque to the console; storing it is the caller's business.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email y contraseña son obligatorios: %w", backend.ErrBadRequest)
	}
	token, err := s.api.Auth.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	return token, nil
}
