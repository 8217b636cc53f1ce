package handlers_analytics

import (
	"littlefolio/internal/models/lfanalytics"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const recentVisitorsLimit = 10

type AnalyticsHandler struct {
	service *lfanalytics.Service
}

func NewAnalyticsHandler(service *lfanalytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
	}
}

// GetStats30Days retourne les statistiques des 30 derniers jours
func (ah *AnalyticsHandler) GetStats30Days(c *gin.Context) {
	windowStart := time.Now().AddDate(0, 0, -30)
	stats, err := ah.service.SummarizeSince(windowStart, recentVisitorsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve analytics",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRealtimeStats retourne les statistiques en temps réel
func (ah *AnalyticsHandler) GetRealtimeStats(c *gin.Context) {
	stats, err := ah.service.GetRealtimeStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve realtime stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
