package domain

import "errors"

// Business errors. Handlers translate these into user-facing messages
// (flash on pages, JSON on the API); any other error is a data-access
// failure and comes back as a 500.
var (
	ErrValidation      = errors.New("datos de registro inválidos")
	ErrEmailTaken      = errors.New("el email ya está registrado")
	ErrBadCredentials  = errors.New("credenciales incorrectas")
	ErrUnauthenticated = errors.New("sesión no válida")

	ErrInvalidClassID  = errors.New("id de clase inválido")
	ErrClassNotFound   = errors.New("clase no encontrada")
	ErrClosedPeriod    = errors.New("el box está cerrado")
	ErrAlreadyReserved = errors.New("ya existe una reserva para esta clase")
	ErrClassFull       = errors.New("clase llena")
)
