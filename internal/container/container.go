package container

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/descubre-app/descubre-api/app/db"
	"github.com/descubre-app/descubre-api/config"
	"github.com/descubre-app/descubre-api/internal/api/chat"
	"github.com/descubre-app/descubre-api/internal/api/generative"
	"github.com/descubre-app/descubre-api/internal/api/place"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *slog.Logger
	Pool         *pgxpool.Pool
	PlaceHandler *place.HandlerImpl
	ChatHandler  *chat.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	placeRepo := place.NewRepository(pool, logger)
	placeService := place.NewService(placeRepo, logger)
	placeHandler := place.NewHandlerImpl(placeService, logger)

	// A missing API key disables the generative backend; the engine then
	// serves template responses only.
	var backend generative.Backend
	genClient, err := generative.NewClient(context.Background(),
		cfg.Chat.Model,
		cfg.Chat.Temperature,
		time.Duration(cfg.Chat.BackendTimeoutMS)*time.Millisecond,
		logger)
	switch {
	case errors.Is(err, generative.ErrNotConfigured):
		logger.Warn("Generative backend not configured, using template responses only")
	case err != nil:
		logger.Error("Failed to initialize generative backend", slog.Any("error", err))
		return nil, err
	default:
		backend = genClient
	}

	engineCfg := chat.DefaultEngineConfig()
	if cfg.Chat.CandidateLimit > 0 {
		engineCfg.CandidateLimit = cfg.Chat.CandidateLimit
	}

	classifier := chat.NewIntentClassifier()
	synthesizer := chat.NewResponseSynthesizer(engineCfg, backend, classifier, logger)
	normalizer := chat.NewResponseNormalizer(engineCfg, placeService, logger)

	chatRepo := chat.NewRepository(pool, logger)
	chatService := chat.NewService(engineCfg, chatRepo, placeService, synthesizer, normalizer, logger)
	chatHandler := chat.NewHandlerImpl(chatService, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Pool:         pool,
		PlaceHandler: placeHandler,
		ChatHandler:  chatHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
