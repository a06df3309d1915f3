package handlers

import (
	"trading_dashboard/internal/logger"
	"trading_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(h.requestID, h.requestLogger, h.recovery, cors)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", h.root)
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerBinanceRoutes(router)
	h.registerClientRoutes(router)
	h.registerBotRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/forgot-password", h.forgotPassword)
	r.POST("/reset-password", h.resetPassword)
}

func (h *Handler) registerBinanceRoutes(r *gin.Engine) {
	bn := r.Group("/binance", h.requirePortfolio)
	{
		bn.GET("/account", h.getAccount)
		bn.GET("/balance", h.getBalances)
		bn.GET("/balance/:asset", h.getAssetBalance)
		bn.GET("/console", h.logBalances)
		bn.GET("/price/:symbol", h.getPrice)
		bn.GET("/ws", h.wsPortfolio)
	}
}

func (h *Handler) registerClientRoutes(r *gin.Engine) {
	clients := r.Group("/clients", h.userIdMiddleware)
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.PUT("/:id", h.updateClient)
		clients.DELETE("/:id", h.deleteClient)
	}
}

func (h *Handler) registerBotRoutes(r *gin.Engine) {
	bot := r.Group("/bot", h.userIdMiddleware)
	{
		bot.GET("/configs", h.listBotConfigs)
		bot.POST("/configs", h.createBotConfig)
		bot.GET("/active", h.activeBotConfig)
		// Body: none. Deactivates the caller's other configs.
		bot.POST("/configs/:id/toggle", h.toggleBotConfig)
	}
}
