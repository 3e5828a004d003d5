package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AskRequest is a single assistant question. The bridge is stateless per
// call; clients resend prior turns themselves if they want continuity.
type AskRequest struct {
	Message string `json:"message" binding:"required" example:"How much did she eat today?"`
}

// @Summary      Ask the assistant
// @Description  Answers one question with the most recent logs as context. Always returns a reply; provider failures degrade to a fixed fallback message.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body   AskRequest  true  "User question"
// @Success      200   {object}  map[string]string  "reply"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/assistant [post]
func (h *Handler) askAssistant(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}

	reply := h.services.Assistant.Ask(c.Request.Context(), req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
