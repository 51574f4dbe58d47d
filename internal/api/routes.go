package api

import "github.com/gin-gonic/gin"

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/ranking", handler.GetRanking)
		api.GET("/resorts", handler.GetResorts)
		api.GET("/resorts/:slug", handler.GetResortDetail)
		api.GET("/crowd", handler.GetCrowdOverview)
		api.GET("/crowd/:slug", handler.GetCrowdEstimate)
	}
}
