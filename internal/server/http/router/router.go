package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/passmint/internal/config"
	"github.com/polkiloo/passmint/internal/server/http/handlers"
	"github.com/polkiloo/passmint/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PassmintFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	quoteHandler := handlers.NewQuoteHandler(facade, cfg.MtopDecimals)
	passHandler := handlers.NewPassHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.GET("/status", passHandler.Status)
	api.GET("/tiers/:tier/quote", quoteHandler.Quote)
	api.POST("/passes/purchase", passHandler.Purchase)
	api.GET("/passes/:id", passHandler.Lookup)
	api.GET("/passes/:id/descriptor", passHandler.Descriptor)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(facade))
	admin.POST("/passes/grant", adminHandler.Grant)
	admin.PUT("/oracles/:asset", adminHandler.SwapOracle)
	admin.PUT("/fee-collector", adminHandler.SetFeeCollector)

	return engine
}
