// Package models contains data models for the back-office API.
package models

import "time"

// User represents an account able to authenticate against the API.
//
// OTP and OTPExpires are set together by a password-reset request and
// cleared together by a successful reset or a failed mail dispatch.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         string     `json:"role" gorm:"not null;default:admin"`
	OTP          *string    `json:"-" gorm:"column:otp"`
	OTPExpires   *time.Time `json:"-" gorm:"column:otp_expires"`
	Theme        string     `json:"theme" gorm:"not null;default:light"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
