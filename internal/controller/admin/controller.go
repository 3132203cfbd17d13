// Package admin provides HTTP handlers reserved for administrators.
package admin

import (
	"fmt"
	"net/http"
	"time"

	"findjob-backend/internal/service"
	"findjob-backend/internal/utilities"

	"github.com/gin-gonic/gin"
)

// AdminController handles administrator reports.
type AdminController struct {
	Stats *service.StatsService
}

// NewAdminController creates a new instance of AdminController.
func NewAdminController(stats *service.StatsService) *AdminController {
	return &AdminController{
		Stats: stats,
	}
}

// GetJobStats reports job counts by status and application counts per day.
// @Summary Job and application statistics
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param since query string false "Only count applications from this day on (YYYY-MM-DD)"
// @Success 200 {object} service.JobStats
// @Failure 400 {object} utilities.ErrorResponse "Invalid since"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /stats/jobs [get]
func (ac *AdminController) GetJobStats(c *gin.Context) {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid since: %q", raw),
			})
			return
		}
		since = t
	}

	stats, err := ac.Stats.Jobs(c.Request.Context(), utilities.OptionalUser(c), since)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
