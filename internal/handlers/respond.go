// Package handlers contains HTTP request handlers for the back-office API.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/middleware"
	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/repository"
	"github.com/webteam-oss/backoffice-api/internal/service"
)

// respondError writes a JSON error body with the given status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondServiceError maps a service sentinel to its HTTP status. Unknown
// errors are logged with the request ID and surface as a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidOTP):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists):
		respondError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("request %s failed: %v", middleware.GetRequestID(c), err)
		respondError(c, http.StatusInternalServerError, "server error")
	}
}

// audit writes an action log entry. Failures are logged and never fail the
// request.
func audit(c *gin.Context, repo repository.ActionLogRepository, action string, userID *int64, actor, detail string) {
	if repo == nil {
		return
	}
	entry := &models.ActionLog{
		Action:    action,
		UserID:    userID,
		Actor:     actor,
		IP:        c.ClientIP(),
		RequestID: middleware.GetRequestID(c),
		Detail:    detail,
	}
	// Use a detached context so audit writes survive client disconnects.
	if err := repo.Log(context.WithoutCancel(c.Request.Context()), entry); err != nil {
		log.Printf("failed to write audit log for %s: %v", action, err)
	}
}
