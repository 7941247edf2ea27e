package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/repository"
)

const (
	defaultActivityLimit = 10
	maxLogLimit          = 100
)

// AdminHandler serves the admin activity feed backed by the action log.
type AdminHandler struct {
	actionLogRepo repository.ActionLogRepository
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(actionLogRepo repository.ActionLogRepository) *AdminHandler {
	return &AdminHandler{actionLogRepo: actionLogRepo}
}

// Activity godoc
// @Summary Recent activity
// @Description Return the latest audit events
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.ActionLog
// @Router /admin/activity [get]
func (h *AdminHandler) Activity(c *gin.Context) {
	logs, err := h.actionLogRepo.Recent(c.Request.Context(), defaultActivityLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Logs godoc
// @Summary Search audit logs
// @Description Filter audit events by action type and free-text search
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param type query string false "Action type, or all"
// @Param search query string false "Matched against actor, detail and IP"
// @Param limit query int false "Maximum rows, capped at 100"
// @Success 200 {array} models.ActionLog
// @Router /admin/logs [get]
func (h *AdminHandler) Logs(c *gin.Context) {
	limit := maxLogLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < maxLogLimit {
			limit = n
		}
	}

	logs, err := h.actionLogRepo.Search(c.Request.Context(), c.Query("type"), c.Query("search"), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
