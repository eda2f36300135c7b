package handlers

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/models"
	"github.com/boxfit/reservas/internal/services"
)

// GET /admin/usuarios
func AdminUsuarios(t *template.Template, gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var usuarios []models.User
		if err := gdb.Order("nombre asc").Find(&usuarios).Error; err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		render(w, t, "admin/usuarios.tmpl", map[string]any{
			"Title":     "Admin • Usuarios",
			"Usuarios":  usuarios,
			"Principal": PrincipalFrom(r),
			"Flash":     MakeFlash(r),
		})
	}
}

// GET /admin/usuarios/nuevo
func AdminNuevoUsuarioForm(t *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, t, "admin/usuarios_nuevo.tmpl", map[string]any{
			"Title":     "Admin • Nuevo usuario",
			"Principal": PrincipalFrom(r),
			"Flash":     MakeFlash(r),
		})
	}
}

// POST /admin/usuarios/nuevo
func AdminNuevoUsuarioSubmit(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		nombre := strings.TrimSpace(r.FormValue("nombre"))
		email := services.NormEmail(r.FormValue("email"))
		password := r.FormValue("password")
		esAdmin := r.FormValue("es_admin") == "on"

		if nombre == "" || email == "" || password == "" {
			http.Redirect(w, r, "/admin/usuarios/nuevo?error=campos", http.StatusSeeOther)
			return
		}

		hash, err := services.HashPassword(password)
		if err != nil {
			http.Redirect(w, r, "/admin/usuarios/nuevo?error=guardar", http.StatusSeeOther)
			return
		}
		usuario := models.User{
			Nombre:       nombre,
			Email:        email,
			PasswordHash: hash,
			EsAdmin:      esAdmin,
		}
		if err := gdb.Create(&usuario).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				http.Redirect(w, r, "/admin/usuarios/nuevo?error=email_en_uso", http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, "/admin/usuarios/nuevo?error=guardar", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin/usuarios?ok=usuario_creado", http.StatusSeeOther)
	}
}

// GET /admin/usuarios/editar/{id}
func AdminEditarUsuarioForm(t *template.Template, gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(r, "id"))
		var usuario models.User
		if err := gdb.First(&usuario, id).Error; err != nil {
			http.Redirect(w, r, "/admin/usuarios?error=usuario_no_encontrado", http.StatusSeeOther)
			return
		}
		render(w, t, "admin/usuarios_editar.tmpl", map[string]any{
			"Title":     "Admin • Editar usuario",
			"Usuario":   usuario,
			"Principal": PrincipalFrom(r),
			"Flash":     MakeFlash(r),
		})
	}
}

// POST /admin/usuarios/editar/{id}
// The password is not editable here; only name, email and the admin flag.
func AdminEditarUsuarioSubmit(gdb *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		id, _ := strconv.Atoi(chi.URLParam(r, "id"))
		var usuario models.User
		if err := gdb.First(&usuario, id).Error; err != nil {
			http.Redirect(w, r, "/admin/usuarios?error=usuario_no_encontrado", http.StatusSeeOther)
			return
		}

		nombre := strings.TrimSpace(r.FormValue("nombre"))
		email := services.NormEmail(r.FormValue("email"))
		esAdmin := r.FormValue("es_admin") == "on"

		ruta := "/admin/usuarios/editar/" + strconv.Itoa(id)
		if nombre == "" || email == "" {
			http.Redirect(w, r, ruta+"?error=nombre_email", http.StatusSeeOther)
			return
		}

		usuario.Nombre = nombre
		usuario.Email = email
		usuario.EsAdmin = esAdmin
		if err := gdb.Save(&usuario).Error; err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique") {
				http.Redirect(w, r, ruta+"?error=email_en_uso", http.StatusSeeOther)
				return
			}
			http.Redirect(w, r, ruta+"?error=guardar", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/admin/usuarios?ok=usuario_actualizado", http.StatusSeeOther)
	}
}
