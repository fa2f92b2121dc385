package httpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"integration-agent/internal/middleware"
	"integration-agent/internal/model"
	"integration-agent/pkg/log"
)

// Orchestrator is the command-processing dependency of the server.
type Orchestrator interface {
	ProcessQuery(ctx context.Context, sessionID, query string) (string, error)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Domain
	orchestrator Orchestrator
	backend      model.Backend
	providers    []string

	// Middleware
	mw middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	Orchestrator Orchestrator
	Backend      model.Backend
	Providers    []string

	// Per-client request budget, zero disables limiting.
	RateLimitPerMin int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.New(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		orchestrator: cfg.Orchestrator,
		backend:      cfg.Backend,
		providers:    cfg.Providers,
		mw:           middleware.New(logger, cfg.RateLimitPerMin),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Run starts the server and blocks until it stops.
func (srv *HTTPServer) Run() error {
	srv.l.Infof(context.Background(), "HTTP server listening on :%d", srv.port)
	return srv.gin.Run(fmt.Sprintf(":%d", srv.port))
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.orchestrator == nil {
		return errors.New("orchestrator is required")
	}
	return nil
}
