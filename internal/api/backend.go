package api

import (
	"time"

	"telcochurn/app"
	"telcochurn/internal"

	"github.com/gin-gonic/gin"
)

// BackendConfig holds the request defaults of the backend
type BackendConfig struct {
	Target         string
	IDColumn       string
	Fold           float64
	MaxUploadBytes int64
}

// Backend is the JSON prediction and analysis service
type Backend struct {
	router      *gin.Engine
	predictions *app.PredictionService
	preparation *app.PreparationService
	metrics     *Metrics
	config      BackendConfig
	logger      *internal.Logger
}

// NewBackend builds the backend and registers its routes
func NewBackend(cfg BackendConfig, predictions *app.PredictionService, preparation *app.PreparationService, logger *internal.Logger) *Backend {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}

	b := &Backend{
		router:      gin.New(),
		predictions: predictions,
		preparation: preparation,
		metrics:     NewMetrics(),
		config:      cfg,
		logger:      logger.With("API"),
	}
	b.router.Use(gin.Logger(), gin.Recovery(), b.observe())
	b.router.MaxMultipartMemory = cfg.MaxUploadBytes
	b.setupRoutes()
	return b
}

// Router exposes the engine for http.Server and tests
func (b *Backend) Router() *gin.Engine {
	return b.router
}

// Metrics returns the backend collectors
func (b *Backend) Metrics() *Metrics {
	return b.metrics
}

func (b *Backend) setupRoutes() {
	b.router.GET("/", b.handleWelcome)
	b.router.GET("/predict", b.handlePredictInfo)
	b.router.POST("/predict", b.handlePredict)
	b.router.GET("/metrics", gin.WrapH(b.metrics.Handler()))

	api := b.router.Group("/api")
	{
		api.POST("/datasets/analyze", b.handleAnalyze)
		api.GET("/runs", b.handleListRuns)
		api.GET("/runs/:id", b.handleGetRun)
	}
}

// observe records request latency by route
func (b *Backend) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		b.metrics.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
