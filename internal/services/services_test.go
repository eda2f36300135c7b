package services

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/db"
	"github.com/boxfit/reservas/internal/models"
)

// openTestDB returns an isolated sqlite database in a temp directory,
// migrated through the same path the server uses.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return gdb
}

// mailStub records sent mail on a channel so tests can wait for the
// fire-and-forget goroutine.
type mailStub struct {
	sent chan string
	err  error
}

func newMailStub() *mailStub {
	return &mailStub{sent: make(chan string, 8)}
}

func (m *mailStub) Send(to, subject, body string) error {
	m.sent <- to + "|" + subject + "|" + body
	return m.err
}

// lunes 10/06/2024, día abierto
var openDay = time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC)

func newTestReservations(t *testing.T, gdb *gorm.DB, mail *mailStub) *Reservations {
	t.Helper()
	s := NewReservations(gdb, mail, zap.NewNop(), time.UTC)
	s.SetClock(func() time.Time { return openDay })
	return s
}

func seedUser(t *testing.T, gdb *gorm.DB, nombre, email string) models.User {
	t.Helper()
	u := models.User{Nombre: nombre, Email: email, PasswordHash: "x"}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedClass(t *testing.T, gdb *gorm.DB, nombre string, horario time.Time, cupos int) models.Class {
	t.Helper()
	c := models.Class{Nombre: nombre, Horario: horario, CuposMaximos: cupos}
	if err := gdb.Create(&c).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return c
}

func countReservations(t *testing.T, gdb *gorm.DB, classID uint) int64 {
	t.Helper()
	var cnt int64
	if err := gdb.Model(&models.Reservation{}).Where("class_id = ?", classID).Count(&cnt).Error; err != nil {
		t.Fatalf("count reservations: %v", err)
	}
	return cnt
}
