// Package repository provides the data access layer for the back-office API.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/webteam-oss/backoffice-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	SetOTP(ctx context.Context, id int64, otp string, expires time.Time) error
	ClearOTP(ctx context.Context, id int64) error
	ResetPassword(ctx context.Context, id int64, passwordHash string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user id %d: %w", user.ID, err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete user id %d: %w", id, err)
	}
	return nil
}

func (r *userRepository) SetOTP(ctx context.Context, id int64, otp string, expires time.Time) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"otp":         otp,
			"otp_expires": expires,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set otp for user id %d: %w", id, err)
	}
	return nil
}

func (r *userRepository) ClearOTP(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"otp":         nil,
			"otp_expires": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to clear otp for user id %d: %w", id, err)
	}
	return nil
}

// ResetPassword replaces the password hash and clears both OTP fields in a
// single UPDATE so the three columns are never observable in a mixed state.
func (r *userRepository) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"otp":           nil,
			"otp_expires":   nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to reset password for user id %d: %w", id, err)
	}
	return nil
}
