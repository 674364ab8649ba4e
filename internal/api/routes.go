package api

import "github.com/gin-gonic/gin"

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/import/config", handler.Config)

		school := v1.Group("/schools/:school_id")
		{
			school.POST("/import", handler.Import)
			school.POST("/import/retry", handler.RetryProvisioning)
			school.GET("/import/template/:category", handler.Template)
		}
	}
}
