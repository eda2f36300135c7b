package main

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/boxfit/reservas/internal/app"
	"github.com/boxfit/reservas/internal/config"
	"github.com/boxfit/reservas/internal/db"
	"github.com/boxfit/reservas/internal/handlers"
	"github.com/boxfit/reservas/internal/services"
	"github.com/boxfit/reservas/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync() //nolint:errcheck

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	logger.Info("database ready", zap.String("path", cfg.DBPath))

	loc, err := time.LoadLocation(cfg.VenueTZ)
	if err != nil {
		logger.Warn("timezone not found, falling back to CET", zap.String("tz", cfg.VenueTZ))
		loc = time.FixedZone("CET", 1*3600)
	}

	mailer := services.NewMailer(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword)
	identity := services.NewIdentity(conn)
	catalog := services.NewCatalog(conn)
	reservas := services.NewReservations(conn, mailer, logger, loc)
	sessions := handlers.NewSessions(cfg.SecretKey, conn)

	r := web.Router(web.Deps{
		DB:       conn,
		Sessions: sessions,
		Identity: identity,
		Reservas: reservas,
		Catalog:  catalog,
		Loc:      loc,
	})

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("env", cfg.Environment))
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
