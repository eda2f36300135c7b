package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/boxfit/reservas/internal/domain"
	"github.com/boxfit/reservas/internal/services"
)

// GET /clases — every class with bulk-aggregated availability.
func Clases(t *template.Template, catalog *services.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clases, err := catalog.ListAll()
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		mensaje := ""
		if !services.AnyAvailable(clases) {
			mensaje = "Todas las clases están llenas."
		}
		render(w, t, "clases.tmpl", map[string]any{
			"Title":     "Todas las clases",
			"Clases":    clases,
			"Mensaje":   mensaje,
			"Principal": PrincipalFrom(r),
		})
	}
}

type claseJSON struct {
	ID               uint      `json:"id"`
	Nombre           string    `json:"nombre"`
	Horario          time.Time `json:"horario"`
	CuposMaximos     int       `json:"cupos_maximos"`
	Ocupacion        int64     `json:"ocupacion"`
	CuposDisponibles int       `json:"cupos_disponibles"`
}

// GET /get_clases_data — JSON feed of upcoming classes with availability.
// When every class is full the body is a message object, still with 200.
func ClasesData(catalog *services.Catalog, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hoy := startOfDay(time.Now(), loc)
		clases, err := catalog.ListUpcoming(hoy)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error al consultar las clases."})
			return
		}
		if !services.AnyAvailable(clases) {
			writeJSON(w, http.StatusOK, map[string]string{"message": "Todas las clases están llenas."})
			return
		}
		out := make([]claseJSON, 0, len(clases))
		for _, c := range clases {
			out = append(out, claseJSON{
				ID:               c.ID,
				Nombre:           c.Nombre,
				Horario:          c.Horario,
				CuposMaximos:     c.CuposMaximos,
				Ocupacion:        c.Ocupacion,
				CuposDisponibles: c.CuposDisponibles,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /reservar/{claseID}
func Reservar(reservas *services.Reservations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r)
		if principal == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "No autenticado."})
			return
		}

		claseID, err := strconv.Atoi(chi.URLParam(r, "claseID"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ID de clase inválido."})
			return
		}

		_, err = reservas.Reserve(principal.User(), claseID)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, map[string]string{"message": "Reserva realizada con éxito."})
		case errors.Is(err, domain.ErrInvalidClassID):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ID de clase inválido."})
		case errors.Is(err, domain.ErrClassNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Clase no encontrada."})
		case errors.Is(err, domain.ErrClosedPeriod):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Hoy el Box permanece cerrado, podrás reservar a partir del domingo por la tarde."})
		case errors.Is(err, domain.ErrAlreadyReserved):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Ya tienes una reserva para esta clase."})
		case errors.Is(err, domain.ErrClassFull):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Lo sentimos, esta clase está llena."})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error al crear la reserva."})
		}
	}
}

// GET /mis-reservas
func MisReservas(t *template.Template, catalog *services.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFrom(r)
		reservas, err := catalog.ListReservationsForUser(principal.ID)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		mensaje := ""
		if len(reservas) == 0 {
			mensaje = "No tienes reservas."
		}
		render(w, t, "reservas.tmpl", map[string]any{
			"Title":     "Mis reservas",
			"Reservas":  reservas,
			"Mensaje":   mensaje,
			"Principal": principal,
		})
	}
}
