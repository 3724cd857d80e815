package transport

import (
	"github.com/gin-gonic/gin"
)

func InitRoutes(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Client-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	{
		api.POST("/generate", handler.Generate)
		api.GET("/tasks/:id", handler.TaskStatus)
		api.GET("/history", handler.History)
		api.DELETE("/history", handler.ClearHistory)
		api.GET("/wallet", handler.WalletBalance)
		api.POST("/wallet/promo", handler.RedeemPromo)
		api.PUT("/credential", handler.SetCredential)
		api.DELETE("/credential", handler.ClearCredential)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "kie-studio",
		})
	})
	return router
}
