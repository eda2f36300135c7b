package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/models"
)

// ClassAvailability is a class annotated with its computed occupancy.
type ClassAvailability struct {
	models.Class
	Ocupacion        int64
	CuposDisponibles int
}

// UserReservation is a reservation joined with its class, annotated the same
// way the class listings are.
type UserReservation struct {
	ReservaID uint
	CreatedAt time.Time
	Class     ClassAvailability
}

// Catalog serves the read paths: class listings with availability and a
// user's reservations.
type Catalog struct {
	db *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// ListUpcoming returns classes scheduled at or after asOf, soonest first,
// counting reservations per class.
func (c *Catalog) ListUpcoming(asOf time.Time) ([]ClassAvailability, error) {
	var classes []models.Class
	if err := c.db.Where("horario >= ?", asOf).Order("horario asc").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	out := make([]ClassAvailability, 0, len(classes))
	for _, class := range classes {
		var cnt int64
		if err := c.db.Model(&models.Reservation{}).
			Where("class_id = ?", class.ID).
			Count(&cnt).Error; err != nil {
			return nil, fmt.Errorf("count reservations: %w", err)
		}
		out = append(out, annotate(class, cnt))
	}
	return out, nil
}

// ListAll returns every class regardless of date. Occupancy comes from a
// single GROUP BY aggregation instead of a COUNT per class.
func (c *Catalog) ListAll() ([]ClassAvailability, error) {
	var classes []models.Class
	if err := c.db.Order("horario asc").Find(&classes).Error; err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}

	type resAgg struct {
		ClassID uint
		Total   int64
	}
	var aggs []resAgg
	if len(classes) > 0 {
		if err := c.db.Table("reservations").
			Select("class_id, COUNT(*) AS total").
			Group("class_id").
			Scan(&aggs).Error; err != nil {
			return nil, fmt.Errorf("aggregate reservations: %w", err)
		}
	}
	byClass := make(map[uint]int64, len(aggs))
	for _, a := range aggs {
		byClass[a.ClassID] = a.Total
	}

	out := make([]ClassAvailability, 0, len(classes))
	for _, class := range classes {
		out = append(out, annotate(class, byClass[class.ID]))
	}
	return out, nil
}

// ListReservationsForUser returns the user's reservations with their class
// data, soonest class first.
func (c *Catalog) ListReservationsForUser(userID uint) ([]UserReservation, error) {
	type row struct {
		ReservaID    uint
		CreatedAt    time.Time
		ClassID      uint
		Nombre       string
		Horario      time.Time
		CuposMaximos int
	}
	var rows []row
	if err := c.db.Table("reservations").
		Select(`reservations.id AS reserva_id, reservations.created_at,
		        classes.id AS class_id, classes.nombre, classes.horario, classes.cupos_maximos`).
		Joins("JOIN classes ON classes.id = reservations.class_id").
		Where("reservations.user_id = ?", userID).
		Order("classes.horario asc").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := make([]UserReservation, 0, len(rows))
	for _, r := range rows {
		var cnt int64
		if err := c.db.Model(&models.Reservation{}).
			Where("class_id = ?", r.ClassID).
			Count(&cnt).Error; err != nil {
			return nil, fmt.Errorf("count reservations: %w", err)
		}
		class := models.Class{
			ID:           r.ClassID,
			Nombre:       r.Nombre,
			Horario:      r.Horario,
			CuposMaximos: r.CuposMaximos,
		}
		out = append(out, UserReservation{
			ReservaID: r.ReservaID,
			CreatedAt: r.CreatedAt,
			Class:     annotate(class, cnt),
		})
	}
	return out, nil
}

func annotate(class models.Class, ocupacion int64) ClassAvailability {
	return ClassAvailability{
		Class:            class,
		Ocupacion:        ocupacion,
		CuposDisponibles: class.CuposMaximos - int(ocupacion),
	}
}

// AnyAvailable reports whether at least one class still has free seats.
func AnyAvailable(classes []ClassAvailability) bool {
	for _, c := range classes {
		if c.CuposDisponibles > 0 {
			return true
		}
	}
	return false
}
