package routes

import (
	"github.com/gin-gonic/gin"

	"go-citywatch/apiclient"
	"go-citywatch/handlers"
	"go-citywatch/realtime"
	"go-citywatch/store"
)

func SetupRouter(incidentStore *store.IncidentStore, coordinator *realtime.Coordinator, client *apiclient.Client) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to CityWatch!",
		})
	})

	// api routes
	api := r.Group("/api/citywatch")
	{
		api.GET("/incidents", func(c *gin.Context) {
			handlers.ListIncidents(c, incidentStore)
		})
		api.POST("/incidents", func(c *gin.Context) {
			handlers.ReportIncident(c, incidentStore)
		})
		api.PATCH("/incidents/:id", func(c *gin.Context) {
			handlers.PatchIncident(c, incidentStore)
		})
		api.POST("/incidents/:id/verify", func(c *gin.Context) {
			handlers.VerifyIncident(c, incidentStore)
		})
		api.POST("/incidents/:id/flag", func(c *gin.Context) {
			handlers.FlagIncident(c, incidentStore)
		})

		api.GET("/dashboard", func(c *gin.Context) {
			handlers.GetDashboardStats(c, incidentStore)
		})
		api.GET("/statistics", func(c *gin.Context) {
			handlers.GetRemoteStatistics(c, client)
		})
		api.GET("/map/markers", func(c *gin.Context) {
			handlers.GetMapMarkers(c, incidentStore)
		})
		api.GET("/hospitals/nearby", handlers.GetNearbyHospitals)
		api.GET("/sync/status", func(c *gin.Context) {
			handlers.GetSyncStatus(c, coordinator, incidentStore)
		})
	}

	return r
}
