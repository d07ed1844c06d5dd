package handler

import (
	"net/http"

	"sumo_console/internal/api/middleware"
	"sumo_console/internal/api/view"
	"sumo_console/internal/common"
	"sumo_console/internal/console/service"
	"sumo_console/internal/console/session"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	base
	authService *service.AuthService
}

func NewAuthHandler(v *view.Renderer, once *service.OnceGuard, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{base: base{view: v, once: once}, authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(login chi.Router) {
		login.Use(middleware.RedirectIfAuthenticated)
		login.Get("/login", h.loginPage)
		login.Post("/login", h.login)
	})
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", "Iniciar Sesión", nil)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFlash(w, r, "login", "Iniciar Sesión", nil, &common.Flash{Kind: "error", Message: "Solicitud inválida"})
		return
	}

	token, err := h.authService.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		// A failed login never stores a token or navigates anywhere.
		h.renderFlash(w, r, "login", "Iniciar Sesión", nil, &common.Flash{Kind: "error", Message: "Credenciales incorrectas"})
		return
	}

	session.Write(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}
