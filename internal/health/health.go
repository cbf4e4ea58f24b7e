package health

import (
	"net/http"
	"time"

	"ukphone/internal/phone"

	"github.com/gin-gonic/gin"
)

// selfCheckNumber is formatted on every health probe
const selfCheckNumber = "07123 456 789"

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Uptime string `json:"uptime" example:"1h2m3s"`
}

type HealthChecker struct {
	startedAt time.Time
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{startedAt: time.Now()}
}

// Handler reports liveness; it fails if the formatter rejects a known-good number
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthChecker) Handler(c *gin.Context) {
	response := HealthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
	}

	if _, err := phone.Format(selfCheckNumber); err != nil {
		response.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
