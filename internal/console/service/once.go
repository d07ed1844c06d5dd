package service

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// OnceGuard hands out one-time form tokens and burns them on first use.
// Mutating forms embed a token at render time; a double-click or browser
// resubmit carries the same token and is rejected instead of re-issuing
// backend calls.
type OnceGuard struct {
	store ConsoleStore
}

func NewOnceGuard(store ConsoleStore) *OnceGuard {
	return &OnceGuard{store: store}
}

func (g *OnceGuard) Issue() string {
	return uuid.NewString()
}

// Claim reports whether the token is being used for the first time. A store
// failure is logged and treated as a fresh token so Redis trouble never
// blocks the console.
func (g *OnceGuard) Claim(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	ok, err := g.store.ClaimOnce(ctx, token)
	if err != nil {
		log.Printf("once guard: claiming token: %v", err)
		return true
	}
	return ok
}
