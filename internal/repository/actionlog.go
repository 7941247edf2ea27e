package repository

import (
	"context"
	"fmt"

	"github.com/webteam-oss/backoffice-api/internal/models"
	"gorm.io/gorm"
)

// ActionLogRepository defines the interface for audit log operations.
type ActionLogRepository interface {
	Log(ctx context.Context, entry *models.ActionLog) error
	Recent(ctx context.Context, limit int) ([]models.ActionLog, error)
	Search(ctx context.Context, action, search string, limit int) ([]models.ActionLog, error)
}

type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository creates a new ActionLogRepository instance.
func NewActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &actionLogRepository{db: db}
}

func (r *actionLogRepository) Log(ctx context.Context, entry *models.ActionLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to write action log: %w", err)
	}
	return nil
}

func (r *actionLogRepository) Recent(ctx context.Context, limit int) ([]models.ActionLog, error) {
	var logs []models.ActionLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent action logs: %w", err)
	}
	return logs, nil
}

func (r *actionLogRepository) Search(ctx context.Context, action, search string, limit int) ([]models.ActionLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ActionLog{})

	if action != "" && action != "all" {
		query = query.Where("action = ?", action)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("actor ILIKE ? OR detail ILIKE ? OR ip ILIKE ?", pattern, pattern, pattern)
	}

	var logs []models.ActionLog
	err := query.Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search action logs: %w", err)
	}
	return logs, nil
}
