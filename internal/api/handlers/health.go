package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Root reports liveness and logs which required settings are present, never
// their values, so a misconfigured deployment shows up in the logs.
func (h *Handler) Root(c *gin.Context) {
	h.logger.Info("Config presence",
		zap.Bool("api_key", h.cfg.Monday.APIKey != ""),
		zap.Bool("board_id", h.cfg.Monday.BoardID != ""),
		zap.Bool("phone_column_id", h.cfg.Monday.PhoneColumnID != ""),
		zap.Bool("default_item_id", h.cfg.Monday.DefaultItemID != ""),
		zap.Int("user_ids", len(h.cfg.Monday.UserIDs)),
	)

	c.String(http.StatusOK, "SMS -> Monday webhook running")
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}
