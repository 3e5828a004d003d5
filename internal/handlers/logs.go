package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"babylog/internal/models"
	"babylog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid     = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid       = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errInvalidBodyPref = "invalid body: "
	errSaveLog         = "failed to save log"
	errListLogs        = "failed to load logs"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// CreateLogRequest is the create-entry payload. Type selects which of the
// remaining fields apply; the rest are ignored.
type CreateLogRequest struct {
	// Type of event. Allowed: NURSING, BOTTLE, PUMP, DIAPER, SLEEP
	Type string `json:"type" binding:"required" example:"BOTTLE"`
	// Event start time; defaults to now when omitted (sleep requires it)
	At time.Time `json:"at,omitempty"`
	// Sleep end time (required when type=SLEEP)
	End time.Time `json:"end,omitempty"`
	// BOTTLE: FORMULA | BREAST_MILK; DIAPER: WET | DIRTY | BOTH
	SubType string `json:"sub_type,omitempty" example:"FORMULA"`
	// Bottle volume in ml
	AmountMl int `json:"amount_ml,omitempty" example:"120"`
	// Pump per-side volumes in ml
	LeftMl  int `json:"left_ml,omitempty"`
	RightMl int `json:"right_ml,omitempty"`
	// Nursing per-side timer seconds
	LeftSeconds  int `json:"left_seconds,omitempty"`
	RightSeconds int `json:"right_seconds,omitempty"`
	// Optional free-text annotation
	Notes string `json:"notes,omitempty"`
}

// @Summary      Create a log entry
// @Description  Records one caregiving event. Validation depends on type: nursing needs per-side seconds, bottle needs sub_type and amount_ml, pump needs per-side ml, diaper needs sub_type, sleep needs at and end with end > at.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        body  body   CreateLogRequest  true  "Entry payload"
// @Success      201   {object}  models.LogEntry
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [post]
func (h *Handler) createLog(c *gin.Context) {
	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ctx := c.Request.Context()
	sub := strings.ToUpper(strings.TrimSpace(req.SubType))

	var (
		entry models.LogEntry
		err   error
	)
	switch models.LogType(strings.ToUpper(strings.TrimSpace(req.Type))) {
	case models.TypeNursing:
		entry, err = h.services.LogNursing(ctx, service.NursingDraft{
			StartedAt:    req.At,
			LeftSeconds:  req.LeftSeconds,
			RightSeconds: req.RightSeconds,
			Notes:        req.Notes,
		})
	case models.TypeBottle:
		entry, err = h.services.LogBottle(ctx, service.BottleDraft{
			At:       req.At,
			SubType:  sub,
			AmountMl: req.AmountMl,
			Notes:    req.Notes,
		})
	case models.TypePump:
		entry, err = h.services.LogPump(ctx, service.PumpDraft{
			At:      req.At,
			LeftMl:  req.LeftMl,
			RightMl: req.RightMl,
			Notes:   req.Notes,
		})
	case models.TypeDiaper:
		entry, err = h.services.LogDiaper(ctx, service.DiaperDraft{
			At:      req.At,
			SubType: sub,
			Notes:   req.Notes,
		})
	case models.TypeSleep:
		entry, err = h.services.LogSleep(ctx, service.SleepDraft{
			Start: req.At,
			End:   req.End,
			Notes: req.Notes,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown log type " + req.Type})
		return
	}

	if err != nil {
		if service.IsValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveLog, "log_create_failed", err, "type", req.Type)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// @Summary      List log entries
// @Description  History log, newest first. Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range; date-only treated as end of day"  example(2025-08-31)
// @Param        type  query   string  false  "Entry type"  Enums(NURSING,BOTTLE,PUMP,DIAPER,SLEEP)
// @Success      200   {object}  map[string]interface{}  "count, logs"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from, to time.Time
		err      error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		// A date-only bound means the whole of that day.
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	logs, err := h.services.Logbook.List(ctx, service.LogFilter{
		From: from,
		To:   to,
		Type: models.LogType(c.Query("type")),
	})
	if err != nil {
		if service.IsValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListLogs, "logs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(logs),
		"logs":  logs,
	})
}

// @Summary      Last entry of a type
// @Tags         logs
// @Produce      json
// @Param        type  query   string  true  "Entry type, or FEED for nursing+bottle"  Enums(NURSING,BOTTLE,PUMP,DIAPER,SLEEP,FEED)
// @Success      200   {object}  models.LogEntry
// @Success      204   "no entry of that type"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs/last [get]
func (h *Handler) getLastLog(c *gin.Context) {
	ctx := c.Request.Context()

	var types []models.LogType
	switch q := strings.ToUpper(strings.TrimSpace(c.Query("type"))); {
	case q == "FEED":
		types = models.FeedTypes
	case models.ValidType(models.LogType(q)):
		types = []models.LogType{models.LogType(q)}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown log type " + c.Query("type")})
		return
	}

	entry, err := h.services.Logbook.LastOfType(ctx, types...)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListLogs, "logs_last_failed", err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// isDateOnly reports whether the query string has no time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'", s)
}
