package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"telcochurn/domain/dataset"
	"telcochurn/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html static/*
var embeddedFiles embed.FS

// Config holds frontend settings
type Config struct {
	BackendURL     string
	DatasetFile    string
	RequestTimeout time.Duration
}

// App is the multi-page frontend. Predictions are delegated to the backend.
type App struct {
	router    *chi.Mux
	templates *template.Template
	backend   *BackendClient
	config    Config
	logger    *internal.Logger

	datasetOnce  sync.Once
	datasetTable *dataset.Table
	datasetErr   error
}

// NewApp parses the embedded templates and registers the routes
func NewApp(config Config, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 10 * time.Second
	}

	funcMap := template.FuncMap{
		"field": newSelectField,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		templates: templates,
		backend:   NewBackendClient(config.BackendURL, config.RequestTimeout),
		config:    config,
		logger:    logger.With("UI"),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// Handler returns the root handler for http.Server and tests
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	a.router.Handle("/static/*", http.FileServer(http.FS(embeddedFiles)))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleHome)
	a.router.Get("/analysis", a.handleAnalysis)
	a.router.Get("/analysis/kde", a.handleKDE)
	a.router.Get("/prediction", a.handlePredictionForm)
	a.router.Post("/prediction", a.handlePredict)
	a.router.Get("/about", a.handleAbout)
}

// selectField feeds the "select" template
type selectField struct {
	Label    string
	Name     string
	Options  []string
	Selected string
}

func newSelectField(label, name string, options []string, form map[string]string) selectField {
	return selectField{Label: label, Name: name, Options: options, Selected: form[name]}
}
