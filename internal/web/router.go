package web

import (
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/handlers"
	"github.com/boxfit/reservas/internal/services"
)

// Deps carries everything the routes need. All of it is constructed in
// cmd/server and passed down; no package holds its own handle.
type Deps struct {
	DB       *gorm.DB
	Sessions *handlers.Sessions
	Identity *services.Identity
	Reservas *services.Reservations
	Catalog  *services.Catalog
	Loc      *time.Location
}

func Router(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	tmpl := mustParseTemplates("templates", d.Loc)

	// Public pages
	r.Get("/", handlers.Home(tmpl, d.Catalog, d.Sessions, d.Loc))
	r.Get("/healthz", handlers.Health)
	r.Get("/login", handlers.LoginForm(tmpl))
	r.Post("/login", handlers.LoginSubmit(d.Identity, d.Sessions))
	r.Get("/registro", handlers.RegistroForm(tmpl))
	r.Post("/registro", handlers.RegistroSubmit(d.Identity))

	// Session-gated pages
	r.Group(func(pr chi.Router) {
		pr.Use(d.Sessions.RequireUser)
		pr.Get("/logout", handlers.Logout(d.Sessions))
		pr.Get("/clases", handlers.Clases(tmpl, d.Catalog))
		pr.Get("/mis-reservas", handlers.MisReservas(tmpl, d.Catalog))
	})

	// Session-gated API (JSON errors, no redirects)
	r.Group(func(ar chi.Router) {
		ar.Use(d.Sessions.RequireUserJSON)
		ar.Get("/get_clases_data", handlers.ClasesData(d.Catalog, d.Loc))
		ar.Post("/reservar/{claseID}", handlers.Reservar(d.Reservas))
	})

	// Admin: session + admin flag on every route
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(d.Sessions.RequireAdmin)

		ar.Get("/clases", handlers.AdminClases(tmpl, d.DB))
		ar.Get("/clases/nueva", handlers.AdminNuevaClaseForm(tmpl))
		ar.Post("/clases/nueva", handlers.AdminNuevaClaseSubmit(d.DB, d.Loc))
		ar.Get("/clases/editar/{id}", handlers.AdminEditarClaseForm(tmpl, d.DB))
		ar.Post("/clases/editar/{id}", handlers.AdminEditarClaseSubmit(d.DB, d.Loc))

		ar.Get("/usuarios", handlers.AdminUsuarios(tmpl, d.DB))
		ar.Get("/usuarios/nuevo", handlers.AdminNuevoUsuarioForm(tmpl))
		ar.Post("/usuarios/nuevo", handlers.AdminNuevoUsuarioSubmit(d.DB))
		ar.Get("/usuarios/editar/{id}", handlers.AdminEditarUsuarioForm(tmpl, d.DB))
		ar.Post("/usuarios/editar/{id}", handlers.AdminEditarUsuarioSubmit(d.DB))
	})

	return r
}

func mustParseTemplates(baseDir string, loc *time.Location) *template.Template {
	funcs := template.FuncMap{
		"year":        func() string { return time.Now().Format("2006") },
		"fmtDate":     func(t time.Time) string { return t.In(loc).Format("02/01/2006") },
		"fmtDateTime": func(t time.Time) string { return t.In(loc).Format("02/01/2006 15:04") },
		"fmtHora":     func(t time.Time) string { return t.In(loc).Format("15:04") },
	}

	p := template.New("").Funcs(funcs)
	for _, glob := range []string{
		filepath.Join(baseDir, "layouts", "*.tmpl"),
		filepath.Join(baseDir, "partials", "*.tmpl"),
	} {
		if m, _ := filepath.Glob(glob); len(m) > 0 {
			p = template.Must(p.ParseGlob(glob))
		}
	}
	return p
}
