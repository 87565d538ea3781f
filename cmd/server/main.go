package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pedidos_directos/internal/catalog"
	"pedidos_directos/internal/config"
	"pedidos_directos/internal/handlers"
	"pedidos_directos/internal/money"
	"pedidos_directos/internal/services"
	"pedidos_directos/internal/session"
	"pedidos_directos/pkg/sheets"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	// Currency formatting for the configured storefront locale
	formatter, err := money.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		logger.Fatal("failed to build money formatter", zap.Error(err))
	}

	// Session store: Redis when configured, in-memory otherwise
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Second
	var store session.Store
	if cfg.RedisURL != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL, sessionTTL)
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
		logger.Info("using Redis session store")
	} else {
		store = session.NewMemoryStore(sessionTTL)
		logger.Info("using in-memory session store")
	}

	// Catalog loader
	loader := catalog.NewHTTPLoader(cfg.CatalogBaseURL, time.Duration(cfg.CatalogTimeout)*time.Second, logger)

	// Order log gateway; an empty URL means orders are sent without logging
	gateway := sheets.NewClient(cfg.SheetsWebAppURL, time.Duration(cfg.SubmitTimeout)*time.Second, logger)
	if !gateway.Configured() {
		logger.Info("order log endpoint not configured, submissions will be skipped")
	}

	// Initialize services
	orderService := services.NewOrderService(loader, store, gateway, formatter, logger)

	// Initialize handlers
	apiHandler := handlers.NewAPIHandler(orderService, formatter)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/sessions", apiHandler.CreateSession)
		api.GET("/sessions/:session_id", apiHandler.GetSession)
		api.POST("/sessions/:session_id/items/:item_id/increment", apiHandler.IncrementItem)
		api.POST("/sessions/:session_id/items/:item_id/decrement", apiHandler.DecrementItem)
		api.PUT("/sessions/:session_id/items/:item_id/selection", apiHandler.SelectOption)
		api.PUT("/sessions/:session_id/customer", apiHandler.UpdateCustomer)
		api.GET("/sessions/:session_id/preview", apiHandler.Preview)
		api.POST("/sessions/:session_id/send", apiHandler.Send)
	}

	// Start server
	logger.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
