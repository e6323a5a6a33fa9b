package model

import "time"

// AuditLog mirrors a registrant's per-day meal entitlement state so scan
// activity can be reconciled against what was granted. At most one row
// exists per (registration, calendar date); updates replace it in place.
type AuditLog struct {
	ID              int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityID        int64      `gorm:"index" json:"entity_id,omitempty"`
	RegistrationID  int64      `gorm:"not null;uniqueIndex:idx_audit_logs_reg_date" json:"registration_id"`
	LogDate         time.Time  `gorm:"type:date;not null;uniqueIndex:idx_audit_logs_reg_date" json:"date"`
	EntitlementType string     `gorm:"size:100" json:"entitlement_type,omitempty"`
	Name            string     `gorm:"size:256" json:"name,omitempty"`
	Lunch           int        `gorm:"default:0" json:"lunch"`
	Dinner          int        `gorm:"default:0" json:"dinner"`
	LunchTakenOn    *time.Time `json:"lunch_takenon,omitempty"`
	DinnerTakenOn   *time.Time `json:"dinner_takenon,omitempty"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}
