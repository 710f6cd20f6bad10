package handlers

import (
	"errors"
	"net/http"

	"grinder_relay/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary      Login
// @Description  Static admin account; returns a signed bearer token valid for 8 hours.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body   loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "success, token, user"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	token, user, err := h.services.Login(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthNotConfigured) {
			h.logAndJSONError(c, http.StatusInternalServerError,
				"Server auth not configured", "login_not_configured", err)
			return
		}
		if h.log != nil {
			h.log.Infow("login_failed", "username", input.Username)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}
