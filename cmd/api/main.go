package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	pg "pet-care-reminders/internal/adapters/storage/postgres"
	"pet-care-reminders/internal/platform/config"
	"pet-care-reminders/internal/platform/logger"
	"pet-care-reminders/internal/router"
)

// @title Pet Care Reminders API
// @version 1.0
// @description API de registros de cuidado y recordatorios de mascotas.
func main() {
	// .env es opcional: en prod todo viene del entorno.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(logger.Options{App: "pet-care-reminders"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		App:    cfg.App.Name,
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})

	opts := router.Options{Logger: log}

	if cfg.DB.DSN != "" {
		pool, err := pg.Open(context.Background(), cfg.DB)
		if err != nil {
			// Sin pool no hay servicio: condición fatal.
			log.Fatal().Err(err).Msg("failed to open database pool")
		}
		defer pool.Close()
		opts.Pool = pool
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory repositories (dev mode)")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", srv.Addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}
