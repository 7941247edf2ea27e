package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/webteam-oss/backoffice-api/internal/metrics"
	"github.com/webteam-oss/backoffice-api/internal/middleware"
	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"github.com/webteam-oss/backoffice-api/internal/repository"
	"github.com/webteam-oss/backoffice-api/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler handles account administration and self-service requests.
type UserHandler struct {
	authService   service.AuthService
	userRepo      repository.UserRepository
	actionLogRepo repository.ActionLogRepository
	metrics       *metrics.Metrics
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(authService service.AuthService, userRepo repository.UserRepository, actionLogRepo repository.ActionLogRepository, m *metrics.Metrics) *UserHandler {
	return &UserHandler{
		authService:   authService,
		userRepo:      userRepo,
		actionLogRepo: actionLogRepo,
		metrics:       m,
	}
}

// UpdateUserRequest represents the account update payload. Empty fields keep
// their current value.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// ThemeRequest represents the theme preference payload.
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// List godoc
// @Summary List accounts
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create godoc
// @Summary Invite an account
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} service.UserSummary
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
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

	audit(c, h.actionLogRepo, models.ActionRegister, &user.ID, actorEmail(c), user.Email)
	c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Update an account
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} service.UserSummary
// @Failure 404 {object} map[string]string
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role != "" && !rbac.ValidRole(req.Role) {
		respondError(c, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		respondServiceError(c, err)
		return
	}

	audit(c, h.actionLogRepo, models.ActionUserUpdated, &user.ID, actorEmail(c), user.Email)
	c.JSON(http.StatusOK, service.UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Theme:     user.Theme,
		CreatedAt: user.CreatedAt,
	})
}

// Delete godoc
// @Summary Delete an account
// @Description Deletion is immediate and irreversible
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if _, err := h.userRepo.FindByID(c.Request.Context(), id); err != nil {
		h.respondLookupError(c, err)
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	audit(c, h.actionLogRepo, models.ActionUserDeleted, &id, actorEmail(c), "")
	c.JSON(http.StatusOK, gin.H{"message": "user removed"})
}

// Me godoc
// @Summary Current account profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Identity(c))
}

// GetTheme godoc
// @Summary Current theme preference
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /users/me/theme [get]
func (h *UserHandler) GetTheme(c *gin.Context) {
	user := middleware.Identity(c)
	theme := user.Theme
	if theme == "" {
		theme = "light"
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// UpdateTheme godoc
// @Summary Update theme preference
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ThemeRequest true "Theme, light or dark"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /users/me/theme [put]
func (h *UserHandler) UpdateTheme(c *gin.Context) {
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Theme != "light" && req.Theme != "dark") {
		respondError(c, http.StatusBadRequest, `invalid theme, must be "light" or "dark"`)
		return
	}

	identity := middleware.Identity(c)
	user, err := h.userRepo.FindByID(c.Request.Context(), identity.ID)
	if err != nil {
		h.respondLookupError(c, err)
		return
	}

	user.Theme = req.Theme
	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "theme updated", "theme": user.Theme})
}

func (h *UserHandler) respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "user not found")
		return
	}
	respondServiceError(c, err)
}

func actorEmail(c *gin.Context) string {
	if identity := middleware.Identity(c); identity != nil {
		return identity.Email
	}
	return ""
}
