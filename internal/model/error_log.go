package model

import "time"

// ErrorLog is an append-only record of a failed or anomalous scan.
// Rows are never updated or deleted.
type ErrorLog struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"user_id"`
	RegistrantID int64     `gorm:"index" json:"registrant_id"`
	ErrorCode    string    `gorm:"size:2;index" json:"error_code,omitempty"`
	Error        string    `gorm:"type:text" json:"error"`
	ScanTime     time.Time `gorm:"index;not null" json:"scan_time"`
	CreatedAt    time.Time `json:"-"`
}
