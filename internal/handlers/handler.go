package handlers

import (
	"net/http"

	"smarthub/internal/logger"
	"smarthub/internal/metrics"
	"smarthub/internal/notify"
	"smarthub/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultGreeting = "This that ECSE3038 IOT Project Mayne!"

// Options holds the HTTP-facing settings resolved from config at startup.
type Options struct {
	Greeting       string
	AuthEnabled    bool // guards PUT /settings and exposes /auth/*
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Publisher      notify.Publisher
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	registerValidators()
	if log == nil {
		log = logger.Nop()
	}
	if opts.Greeting == "" {
		opts.Greeting = defaultGreeting
	}
	if opts.Publisher == nil {
		opts.Publisher = notify.Nop{}
	}
	return &Handler{services: services, log: log, opts: opts}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware, h.accessLogMiddleware, h.opts.Metrics.Middleware())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(h.opts.Metrics.Handler()))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	if h.opts.AuthEnabled {
		h.registerAuthRoutes(router)
	}
	h.registerHubRoutes(router)

	// Live state stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

// HTTPHandler returns the router wrapped with the CORS policy.
func (h *Handler) HTTPHandler() http.Handler {
	return WithCORS(h.opts.AllowedOrigins, h.InitRoutes())
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerHubRoutes(r *gin.Engine) {
	settingsWrite := []gin.HandlerFunc{h.putSettings}
	if h.opts.AuthEnabled {
		settingsWrite = append([]gin.HandlerFunc{h.userIdMiddleware}, settingsWrite...)
	}
	r.GET("/settings", h.getSettings)
	r.PUT("/settings", settingsWrite...)

	r.PUT("/temperature", h.putTemperature)
	r.GET("/graph", h.getGraph)
	r.GET("/state", h.getState)
	r.GET("/readings/:id", h.getReading)
}
