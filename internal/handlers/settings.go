package handlers

import (
	"net/http"

	"babylog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errGetSettings  = "failed to load settings"
	errSaveSettings = "failed to save settings"
)

// ReminderRequest sets the feeding-reminder interval; 0 turns it off.
type ReminderRequest struct {
	IntervalHours float64 `json:"interval_hours" example:"3"`
}

// LanguageRequest sets the UI language.
type LanguageRequest struct {
	Language string `json:"language" binding:"required" example:"en"`
}

// @Summary      Get reminder setting
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.ReminderConfig
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings/reminder [get]
func (h *Handler) getReminder(c *gin.Context) {
	cfg, err := h.services.Settings.Reminder(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSettings, "settings_reminder_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Set reminder interval
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   ReminderRequest  true  "Interval in hours; 0 disables"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings/reminder [put]
func (h *Handler) putReminder(c *gin.Context) {
	var req ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Settings.SetReminder(c.Request.Context(), req.IntervalHours); err != nil {
		if service.IsSettingsValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveSettings, "settings_reminder_put_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// @Summary      Get language
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings/language [get]
func (h *Handler) getLanguage(c *gin.Context) {
	lang, err := h.services.Settings.Language(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSettings, "settings_language_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

// @Summary      Set language
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   LanguageRequest  true  "en or he"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings/language [put]
func (h *Handler) putLanguage(c *gin.Context) {
	var req LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Settings.SetLanguage(c.Request.Context(), req.Language); err != nil {
		if service.IsSettingsValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveSettings, "settings_language_put_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
