package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	Environment string
	DBPath      string
	SecretKey   string
	VenueTZ     string

	EmailHost     string
	EmailPort     int
	EmailUser     string
	EmailPassword string
}

func Load() (*Config, error) {
	// .env is optional; environment variables always win.
	if err := godotenv.Load(".env"); err == nil {
		log.Println("loaded configuration from .env file")
	}

	cfg := &Config{
		Addr:          getEnv("ADDR", ":8080"),
		Environment:   getEnv("ENV", "development"),
		DBPath:        getEnv("DB_PATH", "reservas.db"),
		SecretKey:     os.Getenv("SECRET_KEY"),
		VenueTZ:       getEnv("TZ_VENUE", "Europe/Madrid"),
		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailUser:     os.Getenv("EMAIL_USER"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
	}

	port, err := strconv.Atoi(getEnv("EMAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("EMAIL_PORT must be a number: %w", err)
	}
	cfg.EmailPort = port

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required but not set")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
