package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"example.com/eventhub/services/events/config"
	"example.com/eventhub/services/events/internal/api"
	"example.com/eventhub/services/events/internal/cache"
	"example.com/eventhub/services/events/internal/database"
	"example.com/eventhub/services/events/internal/models"
	"example.com/eventhub/services/events/internal/repository"
	"example.com/eventhub/services/events/internal/service"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for users, events and agendas`,
	RunE:  runAPI,
}

func init() {
	rootCmd.AddCommand(apiCmd)
}

func runAPI(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	// Configure logging
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize database connection
	db, err := database.Connect(cfg.DB)
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	defer db.Close()

	if err := migrateModels(db); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	// Initialize cache
	agendaCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
	}

	// Initialize repository and service
	repo := repository.NewRepository(db)
	svc := service.New(repo, agendaCache)

	// Initialize and start the server
	server := api.NewServer(cfg, svc, db)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	log.Info().Msg("Shutting down API server")
	return nil
}

func migrateModels(db database.DB) error {
	gormDB, err := db.DB()
	if err != nil {
		return err
	}
	return models.SetupModels(gormDB)
}
