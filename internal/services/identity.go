package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/domain"
	"github.com/boxfit/reservas/internal/models"
)

const maxFieldLen = 255

// Identity handles account creation and credential checks.
type Identity struct {
	db *gorm.DB
}

func NewIdentity(db *gorm.DB) *Identity {
	return &Identity{db: db}
}

// Register stores a new non-admin user with a bcrypt password hash.
// Fields must be non-empty and at most 255 characters; the email must not be
// in use. Nothing is persisted on failure. There is no auto-login.
func (s *Identity) Register(nombre, email, password string) error {
	nombre = strings.TrimSpace(nombre)
	email = NormEmail(email)

	if nombre == "" || email == "" || password == "" {
		return domain.ErrValidation
	}
	if len(nombre) > maxFieldLen || len(email) > maxFieldLen || len(password) > maxFieldLen {
		return domain.ErrValidation
	}

	var cnt int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if cnt > 0 {
		return domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := models.User{
		Nombre:       nombre,
		Email:        email,
		PasswordHash: string(hash),
		EsAdmin:      false,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Authenticate returns the user matching email+password, or
// domain.ErrBadCredentials when either the user is missing or the password
// does not match (indistinguishable on purpose).
func (s *Identity) Authenticate(email, password string) (*models.User, error) {
	email = NormEmail(email)

	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBadCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrBadCredentials
	}
	return &u, nil
}

// NormEmail lowercases and trims an email address.
func NormEmail(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// HashPassword is the one bcrypt entry point shared with the admin user forms.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
