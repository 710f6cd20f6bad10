package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"grinder_relay/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      List alarms
// @Description  Most recent first. Limit defaults to 50 and is capped at 50.
// @Tags         alarms
// @Produce      json
// @Param        limit  query  int  false  "Max alarms to return (1-50)"
// @Success      200  {array}   models.Alarm
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/alarms [get]
// @Security     BearerAuth
func (h *Handler) listAlarms(c *gin.Context) {
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		if v, err := strconv.Atoi(qs); err == nil {
			limit = v
		}
	}

	alarms, err := h.services.Alarms.List(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError,
			"Failed to fetch alarms", "alarms_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, alarms)
}

// @Summary      Count unacknowledged alarms
// @Tags         alarms
// @Produce      json
// @Success      200  {object}  map[string]int
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/alarms/count [get]
// @Security     BearerAuth
func (h *Handler) countAlarms(c *gin.Context) {
	count, err := h.services.Alarms.CountUnacknowledged(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError,
			"Failed to count alarms", "alarms_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// @Summary      Acknowledge one alarm
// @Tags         alarms
// @Produce      json
// @Param        id  path  string  true  "Alarm id"
// @Success      200  {object}  models.Alarm
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/alarms/{id} [patch]
// @Security     BearerAuth
func (h *Handler) acknowledgeAlarm(c *gin.Context) {
	id := c.Param("id")

	alarm, err := h.services.Alarms.Acknowledge(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAlarmNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Alarm not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError,
			"Failed to update alarm", "alarm_ack_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, alarm)
}

// @Summary      Acknowledge all alarms
// @Tags         alarms
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/alarms/acknowledge-all [post]
// @Security     BearerAuth
func (h *Handler) acknowledgeAll(c *gin.Context) {
	if err := h.services.Alarms.AcknowledgeAll(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError,
			"Failed to acknowledge alarms", "alarms_ack_all_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All alarms acknowledged"})
}

// @Summary      Delete one alarm
// @Description  Idempotent: deleting a nonexistent id succeeds.
// @Tags         alarms
// @Produce      json
// @Param        id  path  string  true  "Alarm id"
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/alarms/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteAlarm(c *gin.Context) {
	id := c.Param("id")

	if err := h.services.Alarms.Delete(c.Request.Context(), id); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError,
			"Failed to delete alarm", "alarm_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
