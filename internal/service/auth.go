// Package service implements the credential and session authority: password
// verification, session token issuance and resolution, and the
// password-reset OTP flow.
package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/webteam-oss/backoffice-api/internal/models"
	"github.com/webteam-oss/backoffice-api/internal/rbac"
	"github.com/webteam-oss/backoffice-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// otpTTL is the validity window of a password-reset code.
const otpTTL = 10 * time.Minute

var (
	ErrMissingFields      = errors.New("please add all fields")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrMailDelivery       = errors.New("email could not be sent")
)

// UserSummary is the account view returned to clients. It never carries the
// password hash or OTP fields.
type UserSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Token       string      `json:"token"`
	User        UserSummary `json:"user"`
	Permissions []string    `json:"permissions"`
}

// Mailer dispatches a notification with plain-text and HTML bodies.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// AuthService is the credential and session authority.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*UserSummary, error)
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	ResolveIdentity(ctx context.Context, token string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, email, otp, newPassword string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenService
	perms    *rbac.Table
	mailer   Mailer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo repository.UserRepository, tokens TokenService, perms *rbac.Table, mailer Mailer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		perms:    perms,
		mailer:   mailer,
	}
}

func (s *authService) Register(ctx context.Context, name, email, password, role string) (*UserSummary, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if role == "" {
		role = rbac.RoleAdmin
	}
	if !rbac.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	summary := summarize(user)
	return &summary, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// A missing account and a wrong password must be indistinguishable.
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:       token,
		User:        summarize(user),
		Permissions: s.perms.Permissions(user.Role),
	}, nil
}

// ResolveIdentity verifies the token and re-fetches the account by subject
// ID, so a role change or deletion takes effect on the very next request.
func (s *authService) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user.PasswordHash = ""
	user.OTP = nil
	user.OTPExpires = nil
	return user, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expires := time.Now().Add(otpTTL)
	if err := s.userRepo.SetOTP(ctx, user.ID, otp, expires); err != nil {
		return err
	}

	text := fmt.Sprintf("Your password reset OTP is %s. It expires in 10 minutes.", otp)
	html := fmt.Sprintf("<h3>Password Reset Request</h3><p>Your OTP code is: <strong>%s</strong></p><p>It expires in 10 minutes.</p>", otp)

	if err := s.mailer.Send(ctx, user.Email, "Password Reset OTP", text, html); err != nil {
		// A reset code must never stay active if the account holder cannot
		// have received it.
		if clearErr := s.userRepo.ClearOTP(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("%w (otp rollback failed: %v)", ErrMailDelivery, clearErr)
		}
		return ErrMailDelivery
	}
	return nil
}

func (s *authService) CompletePasswordReset(ctx context.Context, email, otp, newPassword string) error {
	if otp == "" || newPassword == "" {
		return ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the account exists.
			return ErrInvalidOTP
		}
		return err
	}

	// Exact-string match against an unexpired code; no prefix matching.
	if user.OTP == nil || user.OTPExpires == nil || *user.OTP != otp || !user.OTPExpires.After(time.Now()) {
		return ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.ResetPassword(ctx, user.ID, string(hash))
}

// generateOTP returns a 6-digit numeric code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func summarize(user *models.User) UserSummary {
	theme := user.Theme
	if theme == "" {
		theme = "light"
	}
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Theme:     theme,
		CreatedAt: user.CreatedAt,
	}
}
