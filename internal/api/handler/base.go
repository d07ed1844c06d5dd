package handler

import (
	"errors"
	"net/http"

	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/common"
	"sumo_console/internal/console/service"
	"sumo_console/internal/console/session"
)

// base carries what every screen handler needs: the renderer, the one-time
// form token guard, and the shared render/redirect helpers.
type base struct {
	view *view.Renderer
	once *service.OnceGuard
}

func (b base) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	b.renderFlash(w, r, name, title, data, common.PopFlash(w, r))
}

func (b base) renderFlash(w http.ResponseWriter, r *http.Request, name, title string, data any, flash *common.Flash) {
	b.view.Render(w, name, view.Page{
		Title:    title,
		Identity: session.Peek(session.Read(r)),
		Flash:    flash,
		Data:     data,
	})
}

// fail reports an action error. Any authorization rejection from the
// backend means the session is dead: clear it and send the operator back to
// the login page instead of leaving them on a screen that can only fail.
func (b base) fail(w http.ResponseWriter, r *http.Request, backTo string, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		session.Clear(w)
		common.SetFlash(w, "error", "Sesión expirada, vuelve a iniciar sesión")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	common.SetFlash(w, "error", err.Error())
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

func (b base) ok(w http.ResponseWriter, r *http.Request, backTo, kind, message string) {
	common.SetFlash(w, kind, message)
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// claimOnce burns the form's one-time token. A repeated submission (double
// click, browser re-post) is answered with a redirect and no backend call.
func (b base) claimOnce(w http.ResponseWriter, r *http.Request, backTo string) bool {
	if b.once.Claim(r.Context(), r.PostFormValue("_once")) {
		return true
	}
	b.ok(w, r, backTo, "info", "La acción ya fue procesada")
	return false
}

// sessionExpired mirrors fail for page loads, where an ErrUnauthorized on
// the initial fetch should bounce straight to login.
func (b base) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if errors.Is(err, backend.ErrUnauthorized) {
		session.Clear(w)
		common.SetFlash(w, "error", "Sesión expirada, vuelve a iniciar sesión")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return true
	}
	return false
}
