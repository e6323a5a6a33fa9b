package model

import "time"

// User represents an operator account allowed to submit scans.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"` // bcrypt hash
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	DeviceID  string    `gorm:"size:100;index" json:"device_id,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
