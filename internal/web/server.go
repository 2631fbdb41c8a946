package web

import (
	"net/http"
	"time"

	"github.com/CypherHippie/HeaderHunter/internal/scanner"
	"github.com/CypherHippie/HeaderHunter/internal/web/jobs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server is the HTTP API server for HeaderHunter.
type Server struct {
	router  chi.Router
	addr    string
	runner  *scanner.Runner
	manager *jobs.Manager
	logger  *zap.SugaredLogger
}

// NewServer builds a new Server with middleware and routes configured.
// jobTimeout bounds each asynchronous scan; zero means no limit.
func NewServer(addr string, runner *scanner.Runner, logger *zap.SugaredLogger, jobTimeout time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{
		router:  chi.NewRouter(),
		addr:    addr,
		runner:  runner,
		manager: jobs.NewManager(runner, jobTimeout),
		logger:  logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes()

	return s
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.logger.Infow("listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Manager exposes the job manager for testing.
func (s *Server) Manager() *jobs.Manager {
	return s.manager
}

// requestLogger logs one line per request once it has been served.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Infow("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
