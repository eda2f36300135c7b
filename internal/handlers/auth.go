package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/boxfit/reservas/internal/domain"
	"github.com/boxfit/reservas/internal/services"
)

// GET /login
func LoginForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "login.tmpl", map[string]any{
			"Title": "Iniciar sesión",
			"Next":  r.URL.Query().Get("next"),
			"Flash": MakeFlash(r),
		})
	}
}

// POST /login
func LoginSubmit(identity *services.Identity, sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		email := r.FormValue("email")
		password := r.FormValue("password")
		next := r.FormValue("next")

		user, err := identity.Authenticate(email, password)
		if err != nil {
			if errors.Is(err, domain.ErrBadCredentials) {
				http.Redirect(w, r, "/login?error=credenciales", http.StatusSeeOther)
				return
			}
			http.Error(w, "error interno", http.StatusInternalServerError)
			return
		}

		token, err := sessions.Issue(*user)
		if err != nil {
			http.Error(w, "error interno", http.StatusInternalServerError)
			return
		}
		sessions.SetCookie(w, token)

		if next == "" || !strings.HasPrefix(next, "/") {
			next = "/"
		}
		http.Redirect(w, r, next, http.StatusSeeOther)
	}
}

// GET /registro
func RegistroForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "registro.tmpl", map[string]any{
			"Title": "Crear cuenta",
			"Flash": MakeFlash(r),
		})
	}
}

// POST /registro
func RegistroSubmit(identity *services.Identity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		nombre := strings.TrimSpace(r.FormValue("nombre"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if nombre == "" || email == "" || password == "" {
			http.Redirect(w, r, "/registro?error=campos", http.StatusSeeOther)
			return
		}

		switch err := identity.Register(nombre, email, password); {
		case err == nil:
			http.Redirect(w, r, "/login?ok=registro", http.StatusSeeOther)
		case errors.Is(err, domain.ErrValidation):
			http.Redirect(w, r, "/registro?error=longitud", http.StatusSeeOther)
		case errors.Is(err, domain.ErrEmailTaken):
			http.Redirect(w, r, "/registro?error=email_en_uso", http.StatusSeeOther)
		default:
			http.Error(w, "error interno", http.StatusInternalServerError)
		}
	}
}

// GET /logout (requires session)
func Logout(sessions *Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.ClearCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
