package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all touring API routes
func RegisterRoutes(router *gin.Engine, tours *TourHandlers, catalog *CatalogHandlers, proxy *ProxyHandlers) {
	tourAPI := router.Group("/api/v1/tours")
	{
		tourAPI.POST("", tours.CreateTour())
		tourAPI.GET("", tours.ListTours())
		tourAPI.GET("/:tourId", tours.GetTour())
		tourAPI.DELETE("/:tourId", tours.DeleteTour())
		tourAPI.PUT("/:tourId/workflows", tours.ConfigureWorkflow())
		tourAPI.DELETE("/:tourId/workflows/:kind", tours.RemoveWorkflow())
		tourAPI.POST("/:tourId/validate", tours.ValidateTour())
		tourAPI.POST("/:tourId/finalize", tours.FinalizeTour())
		tourAPI.POST("/:tourId/cancel", tours.CancelOrders())
		tourAPI.POST("/:tourId/participants", tours.AddParticipant())
		tourAPI.GET("/:tourId/participants", tours.ListParticipants())
		tourAPI.POST("/:tourId/participants/import", tours.ImportParticipants())
	}

	warehouseAPI := router.Group("/api/v1/warehouses")
	{
		warehouseAPI.POST("", catalog.CreateWarehouse())
		warehouseAPI.GET("", catalog.ListWarehouses())
		warehouseAPI.GET("/:id", catalog.GetWarehouse())
		warehouseAPI.DELETE("/:id", catalog.DeleteWarehouse())
	}

	teamAPI := router.Group("/api/v1/team-members")
	{
		teamAPI.POST("", catalog.CreateTeamMember())
		teamAPI.GET("", catalog.ListTeamMembers())
		teamAPI.DELETE("/:memberId", catalog.DeleteTeamMember())
	}

	swagAPI := router.Group("/api/v1/swag-items")
	{
		swagAPI.POST("", catalog.SaveSwagItem())
		swagAPI.GET("", catalog.ListSwagItems())
		swagAPI.DELETE("/:sku", catalog.DeleteSwagItem())
	}

	router.GET("/api/v1/extra-customers", catalog.ListExtraCustomers())

	settingsAPI := router.Group("/api/v1/settings")
	{
		settingsAPI.GET("", catalog.GetSettings())
		settingsAPI.PUT("", catalog.UpdateSettings())
		settingsAPI.PUT("/refresh-token", catalog.UpdateRefreshToken())
	}

	router.POST("/api/v1/proxy/graphql", proxy.Forward())
}
