package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxfit/reservas/internal/models"
)

func TestListUpcoming_FiltersAndAnnotates(t *testing.T) {
	gdb := openTestDB(t)
	catalog := NewCatalog(gdb)

	past := seedClass(t, gdb, "Pasada", time.Date(2024, time.June, 9, 18, 0, 0, 0, time.UTC), 10)
	future := seedClass(t, gdb, "Futura", time.Date(2024, time.June, 11, 18, 0, 0, 0, time.UTC), 10)

	u := seedUser(t, gdb, "Ana", "ana@example.com")
	require.NoError(t, gdb.Create(&models.Reservation{UserID: u.ID, ClassID: future.ID}).Error)
	require.NoError(t, gdb.Create(&models.Reservation{UserID: u.ID, ClassID: past.ID}).Error)

	asOf := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	got, err := catalog.ListUpcoming(asOf)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, future.ID, got[0].ID)
	assert.EqualValues(t, 1, got[0].Ocupacion)
	assert.Equal(t, 9, got[0].CuposDisponibles)
}

func TestListUpcoming_Ordering(t *testing.T) {
	gdb := openTestDB(t)
	catalog := NewCatalog(gdb)

	late := seedClass(t, gdb, "Tarde", time.Date(2024, time.June, 12, 20, 0, 0, 0, time.UTC), 10)
	early := seedClass(t, gdb, "Temprano", time.Date(2024, time.June, 12, 8, 0, 0, 0, time.UTC), 10)

	got, err := catalog.ListUpcoming(time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)
}

func TestListAll_BulkAggregation(t *testing.T) {
	gdb := openTestDB(t)
	catalog := NewCatalog(gdb)

	c1 := seedClass(t, gdb, "C1", time.Date(2024, time.June, 12, 18, 0, 0, 0, time.UTC), 2)
	c2 := seedClass(t, gdb, "C2", time.Date(2024, time.June, 13, 18, 0, 0, 0, time.UTC), 5)
	c3 := seedClass(t, gdb, "C3", time.Date(2024, time.June, 14, 18, 0, 0, 0, time.UTC), 5)

	u1 := seedUser(t, gdb, "U1", "u1@example.com")
	u2 := seedUser(t, gdb, "U2", "u2@example.com")
	for _, r := range []models.Reservation{
		{UserID: u1.ID, ClassID: c1.ID},
		{UserID: u2.ID, ClassID: c1.ID},
		{UserID: u1.ID, ClassID: c2.ID},
	} {
		rr := r
		require.NoError(t, gdb.Create(&rr).Error)
	}

	got, err := catalog.ListAll()
	require.NoError(t, err)
	require.Len(t, got, 3)

	byID := make(map[uint]ClassAvailability, len(got))
	for _, c := range got {
		byID[c.ID] = c
	}
	assert.EqualValues(t, 2, byID[c1.ID].Ocupacion)
	assert.Equal(t, 0, byID[c1.ID].CuposDisponibles)
	assert.EqualValues(t, 1, byID[c2.ID].Ocupacion)
	assert.Equal(t, 4, byID[c2.ID].CuposDisponibles)
	assert.EqualValues(t, 0, byID[c3.ID].Ocupacion)
	assert.Equal(t, 5, byID[c3.ID].CuposDisponibles)

	assert.True(t, AnyAvailable(got))
}

func TestAnyAvailable_AllFull(t *testing.T) {
	classes := []ClassAvailability{
		{Class: models.Class{CuposMaximos: 2}, Ocupacion: 2, CuposDisponibles: 0},
		{Class: models.Class{CuposMaximos: 1}, Ocupacion: 1, CuposDisponibles: 0},
	}
	assert.False(t, AnyAvailable(classes))
	assert.False(t, AnyAvailable(nil))
}

func TestListReservationsForUser(t *testing.T) {
	gdb := openTestDB(t)
	catalog := NewCatalog(gdb)

	ana := seedUser(t, gdb, "Ana", "ana@example.com")
	otro := seedUser(t, gdb, "Otro", "otro@example.com")
	c1 := seedClass(t, gdb, "C1", time.Date(2024, time.June, 12, 18, 0, 0, 0, time.UTC), 3)
	c2 := seedClass(t, gdb, "C2", time.Date(2024, time.June, 11, 18, 0, 0, 0, time.UTC), 3)

	for _, r := range []models.Reservation{
		{UserID: ana.ID, ClassID: c1.ID},
		{UserID: ana.ID, ClassID: c2.ID},
		{UserID: otro.ID, ClassID: c1.ID},
	} {
		rr := r
		require.NoError(t, gdb.Create(&rr).Error)
	}

	got, err := catalog.ListReservationsForUser(ana.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by class time: c2 (day 11) before c1 (day 12).
	assert.Equal(t, c2.ID, got[0].Class.ID)
	assert.Equal(t, c1.ID, got[1].Class.ID)

	// c1 has two reservations in total (ana + otro).
	assert.EqualValues(t, 2, got[1].Class.Ocupacion)
	assert.Equal(t, 1, got[1].Class.CuposDisponibles)
}
