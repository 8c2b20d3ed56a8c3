package router

import (
	"net/http"

	_ "pk-dosing-form/docs"
	mem "pk-dosing-form/internal/adapters/storage/memory"
	pg "pk-dosing-form/internal/adapters/storage/postgres"
	"pk-dosing-form/internal/domain/calculations"
	"pk-dosing-form/internal/middleware"
	"pk-dosing-form/internal/platform/logger"
	"pk-dosing-form/internal/ui"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => logger.Nop()

	// Opcional: si viene, el historial va a Postgres; si no, in-memory.
	// El dueño del pool (cmd/api) lo cierra.
	DB *sqlx.DB
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svc := calculations.NewService(newRepository(opts, log))

	ui.RegisterRoutes(r, svc, log)
	calculations.RegisterRoutes(r, svc, log)

	return r
}

func newRepository(opts Options, log logger.Logger) calculations.Repository {
	if opts.DB != nil {
		log.Info("calculation history: postgres", nil)
		return pg.NewCalculationsRepo(opts.DB)
	}
	log.Info("calculation history: memory", nil)
	return mem.NewCalculationsRepo()
}
