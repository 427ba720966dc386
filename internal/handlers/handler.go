package handlers

import (
	"time"

	_ "crop_forecast/docs"
	"crop_forecast/internal/logger"
	"crop_forecast/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options carries the HTTP-facing settings the handlers need.
type Options struct {
	// ChartPath is the PNG the forecast engine writes; served at chartURL.
	ChartPath string
	// SessionTTL bounds the session cookie lifetime.
	SessionTTL time.Duration
	// SecureCookies marks the session cookie Secure (HTTPS deployments).
	SecureCookies bool
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(loadTemplates())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)
	router.GET(chartURL, h.chart)

	h.registerPageRoutes(router)
	h.registerAPIRoutes(router)

	router.GET("/ws/predictions", h.requireAPISession, h.wsPredictions)

	return router
}

func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.POST("/", h.home)
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)

	gated := r.Group("/", h.requirePageSession)
	{
		gated.GET("/registered", h.registered)
		gated.GET("/input", h.input)
		gated.POST("/input", h.input)
		gated.POST("/predict", h.predict)
		gated.GET("/prediction_result", h.predictionResult)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.requireAPISession)
	{
		predictions := api.Group("/predictions")
		predictions.GET("", h.listPredictions)
		predictions.GET("/latest", h.latestPrediction)
	}
}
