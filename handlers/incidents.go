package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-citywatch/store"
	"go-citywatch/types"
)

type reportRequest struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Lat         *float64 `json:"lat"`
	Long        *float64 `json:"long"`
	Address     string   `json:"address"`
}

// ReportIncident accepts a community report and inserts it into the store.
func ReportIncident(c *gin.Context, s *store.IncidentStore) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Lat == nil || req.Long == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and long are required"})
		return
	}

	incType, err := types.ParseIncidentType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	severity, err := types.ParseSeverity(req.Severity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inc, err := s.Add(types.Incident{
		Type:        incType,
		Description: req.Description,
		Severity:    severity,
		Status:      types.Pending,
		Lat:         *req.Lat,
		Long:        *req.Long,
		Address:     req.Address,
	})
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "incident": inc})
}

// ListIncidents returns the current snapshot in triage order.
func ListIncidents(c *gin.Context, s *store.IncidentStore) {
	c.JSON(http.StatusOK, gin.H{"success": true, "incidents": s.Snapshot()})
}

// VerifyIncident records one community confirmation.
func VerifyIncident(c *gin.Context, s *store.IncidentStore) {
	inc, err := s.Verify(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "incident": inc})
}

// FlagIncident records one community dispute.
func FlagIncident(c *gin.Context, s *store.IncidentStore) {
	inc, err := s.Flag(c.Param("id"))
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "incident": inc})
}

type patchRequest struct {
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Severity    *string  `json:"severity"`
	Status      *string  `json:"status"`
	Lat         *float64 `json:"lat"`
	Long        *float64 `json:"long"`
	Address     *string  `json:"address"`
}

// PatchIncident applies a partial update to an incident.
func PatchIncident(c *gin.Context, s *store.IncidentStore) {
	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := store.IncidentPatch{
		Description: req.Description,
		Lat:         req.Lat,
		Long:        req.Long,
		Address:     req.Address,
	}
	if req.Type != nil {
		t, err := types.ParseIncidentType(*req.Type)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.Type = &t
	}
	if req.Severity != nil {
		sev, err := types.ParseSeverity(*req.Severity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.Severity = &sev
	}
	if req.Status != nil {
		st, err := types.ParseStatus(*req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.Status = &st
	}

	inc, err := s.Patch(c.Param("id"), patch)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "incident": inc})
}

func writeStoreError(c *gin.Context, err error) {
	var notFound *store.NotFoundError
	var conflict *store.ConflictError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
