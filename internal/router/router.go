package router

import (
	"net/http"

	_ "pet-adoption-insights/internal/docs"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/domain/insights"
	"pet-adoption-insights/internal/domain/registry"
	"pet-adoption-insights/internal/middleware"
	"pet-adoption-insights/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si es nil se usan los stores in-memory.
	Stores *storage.Stores

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	stores := opts.Stores
	if stores == nil {
		stores = storage.Memory()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	insightsSvc := insights.NewService(stores.Relational, stores.Documents, stores.Graph, log)
	registrySvc := registry.NewService(stores.Relational, stores.Documents, stores.Graph, log)

	// Rutas por módulo
	insights.RegisterRoutes(r, insightsSvc, log)
	registry.RegisterRoutes(r, registrySvc, log)

	return r
}
