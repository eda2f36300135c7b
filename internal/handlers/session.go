package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boxfit/reservas/internal/domain"
	"github.com/boxfit/reservas/internal/models"
)

const sessionCookie = "session"
const sessionTTL = 7 * 24 * time.Hour

// Principal is the authenticated user attached to a request.
type Principal struct {
	ID      uint
	Nombre  string
	Email   string
	EsAdmin bool
}

// User converts the principal back into the record shape the services take.
func (p *Principal) User() models.User {
	return models.User{ID: p.ID, Nombre: p.Nombre, Email: p.Email, EsAdmin: p.EsAdmin}
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the request principal, or nil outside a guarded route.
func PrincipalFrom(r *http.Request) *Principal {
	p, _ := r.Context().Value(principalKey{}).(*Principal)
	return p
}

type sessionClaims struct {
	Nombre  string `json:"nombre"`
	Email   string `json:"email"`
	EsAdmin bool   `json:"es_admin"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies the signed session cookie. The cookie value is
// an HS256 JWT; the user row is re-read on every request so edits to the
// roster (admin flag, email) take effect without re-login.
type Sessions struct {
	secret []byte
	db     *gorm.DB
}

func NewSessions(secret string, db *gorm.DB) *Sessions {
	return &Sessions{secret: []byte(secret), db: db}
}

func (s *Sessions) Issue(u models.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Nombre:  u.Nombre,
		Email:   u.Email,
		EsAdmin: u.EsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Sessions) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Resolve validates the request's session cookie and loads the current user.
func (s *Sessions) Resolve(r *http.Request) (*Principal, error) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, domain.ErrUnauthenticated
	}

	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, domain.ErrUnauthenticated
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	var u models.User
	if err := s.db.First(&u, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}

	return &Principal{ID: u.ID, Nombre: u.Nombre, Email: u.Email, EsAdmin: u.EsAdmin}, nil
}

// RequireUser gates page routes: without a valid session the user is sent to
// the login form with a return URL.
func (s *Sessions) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Resolve(r)
		if err != nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireUserJSON gates API routes with a 401 JSON body instead of a redirect.
func (s *Sessions) RequireUserJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Resolve(r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "No autenticado."})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequireAdmin gates /admin/*: a session is required and the user must carry
// the admin flag; anyone else gets 403.
func (s *Sessions) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := s.Resolve(r)
		if err != nil {
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		if !p.EsAdmin {
			http.Error(w, "acceso restringido", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}
