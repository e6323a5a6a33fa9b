package model

import "time"

// Participant represents an event registrant. Records are created by an
// external registration workflow; this service only reads them.
type Participant struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	RegistrantID    int64     `gorm:"index;not null" json:"registrant_id"`
	Date            time.Time `gorm:"index;not null" json:"date"`
	ParticipantType string    `gorm:"size:50;index" json:"participant_type,omitempty"`
}
