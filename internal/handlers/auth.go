package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/metrics"
	"github.com/webteam-oss/backoffice-api/internal/middleware"
	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/repository"
	"github.com/webteam-oss/backoffice-api/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService   service.AuthService
	actionLogRepo repository.ActionLogRepository
	metrics       *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, actionLogRepo repository.ActionLogRepository, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		actionLogRepo: actionLogRepo,
		metrics:       m,
	}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents the password-reset request payload.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ResetPasswordRequest represents the password-reset completion payload.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// Register godoc
// @Summary Register a new account
// @Description Create an account with a role (super-admin only)
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} service.UserSummary
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "please add all fields")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	actor := ""
	if identity := middleware.Identity(c); identity != nil {
		actor = identity.Email
	}
	audit(c, h.actionLogRepo, models.ActionRegister, &user.ID, actor, user.Email)

	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Authenticate an account
// @Description Verify credentials and return a session token with the role's permission set
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.LoginFailure.Inc()
		audit(c, h.actionLogRepo, models.ActionLoginFailure, nil, req.Email, "invalid credentials")
		respondServiceError(c, err)
		return
	}

	h.metrics.LoginSuccess.Inc()
	audit(c, h.actionLogRepo, models.ActionLoginSuccess, &response.User.ID, response.User.Email, "")

	c.JSON(http.StatusOK, response)
}

// Me godoc
// @Summary Current account
// @Description Return the account resolved from the session token
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.Identity(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "not authorized")
		return
	}
	c.JSON(http.StatusOK, user)
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Issue a 6-digit OTP valid for 10 minutes and mail it to the account holder
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	h.metrics.OTPRequested.Inc()
	audit(c, h.actionLogRepo, models.ActionPasswordResetRequest, nil, req.Email, "")

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email"})
}

// ResetPassword godoc
// @Summary Complete a password reset
// @Description Replace the password when the submitted OTP matches and has not expired
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.authService.CompletePasswordReset(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	h.metrics.OTPCompleted.Inc()
	audit(c, h.actionLogRepo, models.ActionPasswordReset, nil, req.Email, "")

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
