package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	errGetDashboard = "failed to build dashboard"
	errGetWeekly    = "failed to build weekly stats"
)

// @Summary      Dashboard snapshot
// @Description  Last feed/diaper/sleep tiles with time-ago rendering, the most recent activity, and the reminder due state.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  service.DashboardView
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/stats/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	view, err := h.services.Stats.Dashboard(ctx, time.Now().UTC())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetDashboard, "stats_dashboard_failed", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary      Weekly stats
// @Description  Trailing 7-calendar-day buckets (feeding volume, nursing minutes), diaper wet/dirty counts, and per-day averages.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  service.WeeklyStats
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/stats/weekly [get]
func (h *Handler) getWeekly(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.services.Stats.Weekly(ctx, time.Now().UTC())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetWeekly, "stats_weekly_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
