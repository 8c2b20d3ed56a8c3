package main

import (
	"errors"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	pg "pk-dosing-form/internal/adapters/storage/postgres"
	"pk-dosing-form/internal/config"
	"pk-dosing-form/internal/platform/logger"
	"pk-dosing-form/internal/router"
)

//go:generate swag init -d ../.. -g cmd/api/main.go -o ../../docs --outputTypes go

// @title PK dosing form API
// @version 1.0
// @description Calculadora farmacocinética educativa: AUC, constante de eliminación, vida media y dosis de carga/mantenimiento.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	db := openHistoryDB(cfg.Database.DSN, log)
	if db != nil {
		defer db.Close()
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.NewRouter(router.Options{Logger: log, DB: db}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openHistoryDB devuelve nil (historial in-memory) si no hay DSN o si
// Postgres no responde.
func openHistoryDB(dsn string, log logger.Logger) *sqlx.DB {
	if dsn == "" {
		return nil
	}
	db, err := pg.Open(dsn)
	if err != nil {
		log.Warn("postgres unavailable, using in-memory history", map[string]any{"error": err.Error()})
		return nil
	}
	return db
}
