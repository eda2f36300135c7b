package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/models"
)

// GET /admin/clases
func AdminClases(t *template.Template, gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var clases []models.Class
		if err := gdb.Order("horario asc").Find(&clases).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		render(w, t, "admin/clases.tmpl", map[string]any{
			"Title":     "Admin • Clases",
			"Clases":    clases,
			"Principal": PrincipalFrom(r),
			"Flash":     MakeFlash(r),
		})
	}
}

// GET /admin/clases/nueva
func AdminNuevaClaseForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "admin/clases_nueva.tmpl", map[string]any{
			"Title":     "Admin • Nueva clase",
			"Principal": PrincipalFrom(r),
			"Flash":     MakeFlash(r),
		})
	}
}

// POST /admin/clases/nueva
func AdminNuevaClaseSubmit(gdb *gorm.DB, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		nombre := r.FormValue("nombre")
		horarioStr := r.FormValue("horario")
		cuposStr := r.FormValue("cupos_maximos")

		if nombre == "" || horarioStr == "" || cuposStr == "" {
			http.Redirect(w, r, "/admin/clases/nueva?error=campos", http.StatusSeeOther)
			return
		}
		horario, cupos, ok := parseClaseFields(horarioStr, cuposStr, loc)
		if !ok {
			http.Redirect(w, r, "/admin/clases/nueva?error=campos", http.StatusSeeOther)
			return
		}

		clase := models.Class{Nombre: nombre, Horario: horario, CuposMaximos: cupos}
		if err := gdb.Create(&clase).Error; err != nil {
			http.Redirect(w, r, "/admin/clases/nueva?error=guardar", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin/clases?ok=clase_creada", http.StatusSeeOther)
	}
}

// GET /admin/clases/editar/{id}
func AdminEditarClaseForm(t *template.Template, gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(r, "id"))
		var clase models.Class
		if err := gdb.First(&clase, id).Error; err != nil {
			http.Redirect(w, r, "/admin/clases?error=clase_no_encontrada", http.StatusSeeOther)
			return
		}
		render(w, t, "admin/clases_editar.tmpl", map[string]any{
			"Title":      "Admin • Editar clase",
			"Clase":      clase,
			"HorarioVal": clase.Horario.Format("2006-01-02T15:04"),
			"Principal":  PrincipalFrom(r),
			"Flash":      MakeFlash(r),
		})
	}
}

// POST /admin/clases/editar/{id}
func AdminEditarClaseSubmit(gdb *gorm.DB, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, _ := strconv.Atoi(chi.URLParam(r, "id"))
		var clase models.Class
		if err := gdb.First(&clase, id).Error; err != nil {
			http.Redirect(w, r, "/admin/clases?error=clase_no_encontrada", http.StatusSeeOther)
			return
		}

		nombre := r.FormValue("nombre")
		horarioStr := r.FormValue("horario")
		cuposStr := r.FormValue("cupos_maximos")

		ruta := "/admin/clases/editar/" + strconv.Itoa(id)
		if nombre == "" || horarioStr == "" || cuposStr == "" {
			http.Redirect(w, r, ruta+"?error=campos", http.StatusSeeOther)
			return
		}
		horario, cupos, ok := parseClaseFields(horarioStr, cuposStr, loc)
		if !ok {
			http.Redirect(w, r, ruta+"?error=campos", http.StatusSeeOther)
			return
		}

		clase.Nombre = nombre
		clase.Horario = horario
		clase.CuposMaximos = cupos
		if err := gdb.Save(&clase).Error; err != nil {
			http.Redirect(w, r, ruta+"?error=guardar", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin/clases?ok=clase_actualizada", http.StatusSeeOther)
	}
}

// parseClaseFields parses the datetime-local input and the capacity field.
// Capacity must be a positive integer.
func parseClaseFields(horarioStr, cuposStr string, loc *time.Location) (time.Time, int, bool) {
	horario, err := time.ParseInLocation("2006-01-02T15:04", horarioStr, loc)
	if err != nil {
		horario, err = time.ParseInLocation("2006-01-02 15:04", horarioStr, loc)
		if err != nil {
			return time.Time{}, 0, false
		}
	}
	cupos, err := strconv.Atoi(cuposStr)
	if err != nil || cupos <= 0 {
		return time.Time{}, 0, false
	}
	return horario, cupos, true
}
