package models

import "time"

// Audit action types recorded in the action log.
const (
	ActionLoginSuccess         = "login_success"
	ActionLoginFailure         = "login_failure"
	ActionRegister             = "user_registered"
	ActionPasswordResetRequest = "password_reset_requested"
	ActionPasswordReset        = "password_reset"
	ActionUserUpdated          = "user_updated"
	ActionUserDeleted          = "user_deleted"
)

// ActionLog records a security-relevant event for the admin activity feed.
type ActionLog struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Action    string    `json:"action" gorm:"not null;index"`
	UserID    *int64    `json:"user_id,omitempty" gorm:"index"`
	Actor     string    `json:"actor"`
	IP        string    `json:"ip"`
	RequestID string    `json:"request_id"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for the ActionLog model.
func (ActionLog) TableName() string {
	return "action_logs"
}
