package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/sleeplog/internal/service"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *service.SleepLogService
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *service.SleepLogService, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/test", s.handleTest)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/sleep-log", func(r chi.Router) {
		r.Use(UserIdentity)
		r.Post("/", s.handleCreateSleepLog)
		r.Get("/last-night", s.handleLastNight)
		r.Get("/averages", s.handleAverages)
	})
}

// Mount attaches an additional handler, such as the MCP endpoint, under pattern.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}
