// Package session owns the operator's bearer token on the console side:
// one cookie, read/written/cleared here and nowhere else. The token is the
// backend's, and the console never validates it; a forged or expired token
// simply fails at the first backend call.
package session

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "token"

// Read returns the bearer token for the request: the session cookie first,
// then a raw Authorization header. Empty string means no session.
func Read(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	auth := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return after
	}
	return auth
}

func Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	})
}

func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}

// Identity is whatever the token claims say about the operator. Display
// only; nothing here is trusted.
type Identity struct {
	Email string
	Rol   string
}

// Peek extracts display claims without verifying the token. An opaque
// (non-JWT) token yields an empty identity, which is fine: the navbar just
// shows nothing.
func Peek(token string) Identity {
	if token == "" {
		return Identity{}
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Identity{}
	}
	id := Identity{}
	if v, ok := claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := claims["rol"].(string); ok {
		id.Rol = v
	} else if v, ok := claims["role"].(string); ok {
		id.Rol = v
	}
	return id
}
