package api

import (
	"context"
	"net/http"
	"time"

	"example.com/eventhub/services/events/config"
	"example.com/eventhub/services/events/internal/api/handlers"
	"example.com/eventhub/services/events/internal/database"
	"example.com/eventhub/services/events/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Server represents the HTTP server
type Server struct {
	config     config.Config
	router     *gin.Engine
	httpServer *http.Server
	svc        service.Service
	db         database.DB
}

// NewServer creates a new HTTP server
func NewServer(cfg config.Config, svc service.Service, db database.DB) *Server {
	server := &Server{
		config: cfg,
		svc:    svc,
		db:     db,
	}

	server.router = server.setupRouter()
	server.httpServer = &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      server.router,
		ReadTimeout:  cfg.ServerTimeout,
		WriteTimeout: cfg.ServerTimeout,
	}

	return server
}

// setupRouter configures the HTTP router
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware())
	if s.config.CorsEnabled {
		router.Use(CORSMiddleware())
	}

	handlers.NewHealthHandler(s.db).RegisterRoutes(router)

	open := router.Group("/")
	authed := router.Group("/")
	authed.Use(BearerAuth())

	handlers.NewUserHandler(s.svc).RegisterRoutes(open, authed)
	handlers.NewEventHandler(s.svc).RegisterRoutes(authed)
	handlers.NewAgendaHandler(s.svc).RegisterRoutes(authed)

	return router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Info().Str("address", s.config.ServerAddress).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "HTTP server error")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "HTTP server shutdown error")
	}

	log.Info().Msg("HTTP server shut down successfully")
	return nil
}
