package statusapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Server is the resolver's read-only observability HTTP server: GET
// /health and GET /stats, nothing else. Disabled by default and run on
// its own goroutine and port, separate from the DNS listening socket
// (spec Section 4.8).
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
}

// New builds a Server listening on addr. cacheSource and querySource
// are called fresh on every GET /stats request.
func New(addr string, logger *slog.Logger, cacheSource CacheSource, querySource QuerySource) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(slogRequestLogger(logger))

	h := &handler{startTime: time.Now(), cache: cacheSource, queries: querySource}
	engine.GET("/health", h.health)
	engine.GET("/stats", h.stats)

	return &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Handler returns the underlying HTTP handler, for tests that want to
// drive requests directly without binding a socket.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks serving the status API until an error occurs.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the status API.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
