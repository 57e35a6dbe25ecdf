package router

import (
	"context"
	"net/http"
	"time"

	mem "ranch-roster/internal/adapters/storage/memory"
	"ranch-roster/internal/domain/backups"
	"ranch-roster/internal/domain/roster"
	"ranch-roster/internal/platform/logger"
	"ranch-roster/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Store opcional: si viene nil se usa el backend in-memory
	// (tests y modo efímero sin DATA_PATH).
	Store roster.Store

	Logger   logger.Logger
	Debounce time.Duration
}

// NewRouter arma los servicios y las rutas. Devuelve también el servicio de
// roster para que main pueda hacer Flush del save pendiente en el shutdown.
func NewRouter(opts Options) (http.Handler, *roster.Service) {
	store := opts.Store
	if store == nil {
		store = mem.NewKV()
	}

	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{})
	}

	rosterSvc := roster.NewService(context.Background(), store, roster.ServiceOptions{
		Logger:   log,
		Debounce: opts.Debounce,
	})
	backupsSvc := backups.NewService(store, rosterSvc, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	roster.RegisterRoutes(r, rosterSvc)
	backups.RegisterRoutes(r, backupsSvc)

	return r, rosterSvc
}
