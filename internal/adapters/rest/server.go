package rest

import (
	"context"
	"net/http"
	"property-catalog/internal/core/port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Server - HTTP-фасад каталога для браузерного UI.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg ServerConfig, handlers *CatalogHandler, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, handlers, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// NewRouter собирает маршруты; вынесен отдельно для тестов через httptest.
func NewRouter(cfg ServerConfig, handlers *CatalogHandler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handlers.GetCatalog)
			r.Put("/filter", handlers.SetFilter)
			r.Delete("/filter", handlers.ResetFilter)
			r.Post("/refresh", handlers.Refresh)
		})

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", handlers.CreateProperty)
			r.Get("/{id}", handlers.GetProperty)
			r.Put("/{id}", handlers.UpdateProperty)
			r.Delete("/{id}", handlers.DeleteProperty)
		})

		r.Post("/images", handlers.UploadImage)
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
