package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-citywatch/apiclient"
	"go-citywatch/clustermap"
	"go-citywatch/dashboard"
	"go-citywatch/geomath"
	"go-citywatch/hospitals"
	"go-citywatch/realtime"
	"go-citywatch/store"
)

// GetDashboardStats derives the summary cards from the current snapshot.
func GetDashboardStats(c *gin.Context, s *store.IncidentStore) {
	stats := dashboard.ComputeStats(s.Snapshot())
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// GetMapMarkers projects the current snapshot onto the requested viewport and
// returns the clustered marker list for the zoom level.
func GetMapMarkers(c *gin.Context, s *store.IncidentStore) {
	width, okW := floatQuery(c, "width", 800)
	height, okH := floatQuery(c, "height", 600)
	zoom, okZ := floatQuery(c, "zoom", 1)
	if !okW || !okH || !okZ || width <= 0 || height <= 0 || zoom <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "width, height and zoom must be positive numbers"})
		return
	}

	project := geomath.Equirectangular(geomath.Viewport{Width: width, Height: height})
	markers := clustermap.BuildMarkers(s.Snapshot(), project, zoom)
	c.JSON(http.StatusOK, gin.H{"success": true, "zoom": zoom, "markers": markers})
}

// GetNearbyHospitals returns the hospital directory sorted by distance from
// the caller's position.
func GetNearbyHospitals(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	long, err2 := strconv.ParseFloat(c.Query("long"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and long query params are required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "hospitals": hospitals.Nearest(lat, long)})
}

// GetSyncStatus exposes the connectivity indicator: the dashboard shows
// last-good data plus this state instead of ever going blank.
func GetSyncStatus(c *gin.Context, coord *realtime.Coordinator, s *store.IncidentStore) {
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"state":         coord.State().String(),
		"lastRefresh":   coord.LastRefresh(),
		"incidentCount": s.Len(),
	})
}

// GetRemoteStatistics proxies the remote aggregate statistics for a lookback
// window in days. Failures surface as a 502 with the dashboard expected to
// keep showing its locally computed numbers.
func GetRemoteStatistics(c *gin.Context, client *apiclient.Client) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	stats, err := client.FetchStatistics(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}

// floatQuery reads an optional float query param. An absent param yields the
// fallback; a present but unparsable one reports false.
func floatQuery(c *gin.Context, key string, fallback float64) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
