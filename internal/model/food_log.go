package model

import "time"

// FoodLog records a meal check-in for a registration on a calendar date.
//
// ScanKey carries the uniqueness constraint: for ordinary registrations it is
// derived from (registration_id, log_date) so the same day's scans collapse to
// one row via insert-on-conflict; special/master scans get a random key so
// every scan appends a new row.
type FoodLog struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"-"`
	ScanKey        string     `gorm:"uniqueIndex;size:128;not null" json:"-"`
	RegistrationID string     `gorm:"size:64;not null;index:idx_food_logs_reg_date" json:"registration_id"`
	LogDate        time.Time  `gorm:"type:date;not null;index:idx_food_logs_reg_date" json:"date"`
	Name           string     `gorm:"size:256" json:"name,omitempty"`
	Lunch          *int       `json:"lunch,omitempty"`
	Dinner         *int       `json:"dinner,omitempty"`
	LunchTakenOn   *time.Time `json:"lunch_takenon,omitempty"`
	DinnerTakenOn  *time.Time `json:"dinner_takenon,omitempty"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
}
