package handlers

import (
	"net/http"

	"grinder_relay/internal/models"

	"github.com/gin-gonic/gin"
)

// Request DTO for gateway alarm ingestion.
type alarmRequest struct {
	Type     string `json:"type" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Severity string `json:"severity"` // defaults to "low" when omitted
}

// @Summary      Push device state
// @Description  Replaces the cached snapshot wholesale; the field set is whatever the gateway sends.
// @Tags         gateway
// @Accept       json
// @Produce      json
// @Param        body  body   map[string]interface{}  true  "State fields"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/gateway/state [post]
// @Security     GatewayAuth
func (h *Handler) pushState(c *gin.Context) {
	var fields models.SnapshotFields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid state payload: " + err.Error()})
		return
	}

	h.services.StateCache.Push(fields)
	if h.log != nil {
		h.log.Infow("gateway_state_received", "fields", len(fields))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Report alarm
// @Tags         gateway
// @Accept       json
// @Produce      json
// @Param        body  body   alarmRequest  true  "Alarm payload"
// @Success      200   {object}  map[string]bool
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/gateway/alarm [post]
// @Security     GatewayAuth
func (h *Handler) ingestAlarm(c *gin.Context) {
	var req alarmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid alarm payload: " + err.Error()})
		return
	}

	if _, err := h.services.Alarms.Ingest(c.Request.Context(), req.Type, req.Message, req.Severity); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError,
			"failed to record alarm", "alarm_ingest_failed", err, "type", req.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary      Pending reset status
// @Description  Read-only poll; the slot is not cleared.
// @Tags         gateway
// @Produce      json
// @Success      200  {object}  models.PendingReset
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/reset-status [get]
// @Security     GatewayAuth
func (h *Handler) resetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ResetCoordinator.Peek())
}

// @Summary      Consume pending reset
// @Description  Returns the pending record and clears the slot.
// @Tags         gateway
// @Produce      json
// @Success      200  {object}  models.PendingReset
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/reset-status/consume [post]
// @Security     GatewayAuth
func (h *Handler) consumeReset(c *gin.Context) {
	pending := h.services.ResetCoordinator.Consume()
	if h.log != nil && pending.Active {
		h.log.Infow("reset_consumed", "requested_at", pending.Timestamp)
	}
	c.JSON(http.StatusOK, pending)
}
