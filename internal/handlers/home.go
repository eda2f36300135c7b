package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/boxfit/reservas/internal/services"
)

// GET / — public upcoming-classes listing. The session is resolved
// best-effort so the page can show who is logged in, but is not required.
func Home(t *template.Template, catalog *services.Catalog, sessions *Sessions, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hoy := startOfDay(time.Now(), loc)
		clases, err := catalog.ListUpcoming(hoy)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		principal, _ := sessions.Resolve(r)
		render(w, t, "index.tmpl", map[string]any{
			"Title":             "Clases",
			"Clases":            clases,
			"ClasesDisponibles": services.AnyAvailable(clases),
			"Hoy":               hoy.Format("02/01/2006"),
			"Principal":         principal,
			"Flash":             MakeFlash(r),
		})
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
