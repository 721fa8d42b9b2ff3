package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chesuper/engine/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/view", handler.View)

		cart := v1.Group("/cart")
		{
			cart.POST("/items", handler.SetCartQuantity)
			cart.DELETE("/items/:ean", handler.RemoveCartItem)
			cart.DELETE("", handler.ClearCart)
			cart.GET("/export", handler.ExportCart)
			cart.POST("/import", handler.ImportCart)
		}

		v1.POST("/search", handler.QueueSearch)
		v1.GET("/catalog", handler.Catalog)
		v1.GET("/categorias", handler.Categories)

		v1.POST("/compare", handler.Compare)

		results := v1.Group("/results")
		{
			results.POST("/pricing-mode", handler.SetPricingMode)
			results.GET("/:bandera/share", handler.Share)
			results.DELETE("", handler.LeaveResults)
		}
	}

	return router
}
