package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Read grinder snapshot
// @Description  Latest gateway-reported state; gatewayConnected is derived at read time against the 15s liveness window.
// @Tags         grinder
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/grinder-data [get]
// @Security     BearerAuth
func (h *Handler) getGrinderData(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.StateCache.Read())
}

// @Summary      Request grinder reset
// @Description  Arms the single reset slot (last request wins) and records a "System Reset" audit alarm.
// @Tags         grinder
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "success, message, timestamp"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/reset [post]
// @Security     BearerAuth
func (h *Handler) requestReset(c *gin.Context) {
	pending, err := h.services.ResetCoordinator.Request(c.Request.Context())
	if err != nil {
		// the slot is already armed; only the audit append failed
		h.logAndJSONError(c, http.StatusInternalServerError,
			"failed to record reset audit event", "reset_audit_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Reset queued. Gateway will process shortly.",
		"timestamp": pending.Timestamp,
	})
}
