// internal/server/server.go
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"xmlgen-service/internal/archive"
	"xmlgen-service/internal/common/config"
	"xmlgen-service/internal/common/database"
	"xmlgen-service/internal/common/logger"
	"xmlgen-service/internal/generator"
)

// Server wires the HTTP boundary to the generation core and the archive
// store.
type Server struct {
	cfg      *config.Config
	log      logger.Logger
	service  *generator.Service
	archives *archive.Store
	redis    *database.RedisClient
}

func New(cfg *config.Config, log logger.Logger, service *generator.Service, archives *archive.Store, redisClient *database.RedisClient) *Server {
	return &Server{
		cfg:      cfg,
		log:      log,
		service:  service,
		archives: archives,
		redis:    redisClient,
	}
}

// Router builds the chi router with the standard middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(120 * time.Second))

	r.Post("/generate", s.handleGenerateMultipart)
	r.Post("/api/generate", s.handleGenerateJSON)
	r.Get("/download/{id}", s.handleDownload)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
