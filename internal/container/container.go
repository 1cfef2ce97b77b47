package container

import (
	"context"
	"fmt"

	"telcochurn/adapters/memory"
	"telcochurn/adapters/postgres"
	"telcochurn/app"
	"telcochurn/internal"
	"telcochurn/internal/api"
	"telcochurn/internal/config"
	"telcochurn/internal/inference"
	"telcochurn/ports"
	"telcochurn/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	RunRepo        ports.RunRepository
	PredictionRepo ports.PredictionRepository

	// Model
	Predictor ports.Predictor

	// Services
	PreparationService *app.PreparationService
	PredictionService  *app.PredictionService

	// Servers
	Backend  *api.Backend
	Frontend *ui.App
}

// New creates a container backed by in-memory repositories
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	c := &Container{
		Config:         cfg,
		Logger:         logger,
		RunRepo:        memory.NewRunRepository(),
		PredictionRepo: memory.NewPredictionRepository(),
	}
	return c, nil
}

// InitWithDatabase switches the repositories to Postgres
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.RunRepo = postgres.NewRunRepository(db)
	c.PredictionRepo = postgres.NewPredictionRepository(db)

	c.Logger.With("Container").Info("using Postgres repositories")
	return nil
}

// Build loads the model and wires the services and both servers. A missing
// model leaves the backend running; every prediction then fails with a model error.
func (c *Container) Build() error {
	if err := c.initPredictor(); err != nil {
		return err
	}

	c.PreparationService = app.NewPreparationService(c.RunRepo, c.Logger)
	c.PredictionService = app.NewPredictionService(c.Predictor, c.PredictionRepo, c.Logger)

	c.Backend = api.NewBackend(api.BackendConfig{
		Target:         c.Config.Data.Target,
		IDColumn:       c.Config.Data.IDColumn,
		Fold:           c.Config.Data.Fold,
		MaxUploadBytes: int64(c.Config.Data.MaxUploadMB) << 20,
	}, c.PredictionService, c.PreparationService, c.Logger)

	frontend, err := ui.NewApp(ui.Config{
		BackendURL:     c.Config.Server.BackendURL,
		DatasetFile:    c.Config.Data.DatasetFile,
		RequestTimeout: c.Config.Server.RequestTimeout,
	}, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize frontend: %w", err)
	}
	c.Frontend = frontend

	c.Logger.With("Container").Info("initialized (model loaded: %t, database: %t)", c.Predictor != nil, c.DB != nil)
	return nil
}

func (c *Container) initPredictor() error {
	predictor, err := inference.LoadPredictor(c.Config.Model.Dir, c.Config.Model.Threshold)
	if err != nil {
		c.Logger.With("Container").Warn("no model loaded from %s: %v", c.Config.Model.Dir, err)
		return nil
	}
	c.Predictor = predictor
	return nil
}

// Shutdown releases the database connection
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
