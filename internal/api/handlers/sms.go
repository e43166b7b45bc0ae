package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/bridge"
)

// smsPayload binds both payload shapes the provider can send: Twilio-style
// form fields and their JSON equivalents. Field names are the provider's
// compatibility contract, not ours.
type smsPayload struct {
	From      string `form:"From" json:"from"`
	Body      string `form:"Body" json:"body"`
	Timestamp string `form:"Timestamp" json:"timestamp"`
}

// ReceiveSMS handles the provider webhook. It answers 200 for every outcome:
// the provider redelivers the message on any non-2xx response, and a
// redelivery loop is worse than a silently dropped note. Only the response
// body distinguishes the outcome. Keep this mapping as it is.
func (h *Handler) ReceiveSMS(c *gin.Context) {
	var payload smsPayload
	if err := c.ShouldBind(&payload); err != nil {
		h.logger.Warn("Unparseable webhook payload", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": "malformed payload"})
		return
	}

	result := h.service.Process(c.Request.Context(), bridge.InboundMessage{
		From:      payload.From,
		Body:      payload.Body,
		Timestamp: payload.Timestamp,
	})

	switch result.Status {
	case bridge.StatusInvalid:
		c.JSON(http.StatusOK, gin.H{"status": "error", "error": result.Reason})
	default:
		c.JSON(http.StatusOK, gin.H{"status": "accepted"})
	}
}
