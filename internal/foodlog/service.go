// Package foodlog implements the meal check-in write path and its read
// companion.
package foodlog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mealtrack-backend/internal/model"
	"mealtrack-backend/internal/registry"
	"mealtrack-backend/internal/store"
)

var (
	// ErrValidation marks malformed or missing input; never retried.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a required record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage wraps an underlying transaction failure.
	ErrStorage = errors.New("storage failure")
)

// masterName marks group scans that bypass the one-entry-per-day constraint
// regardless of registration ID.
const masterName = "master"

// UpsertInput carries one check-in. Nil flag/timestamp fields are "not
// supplied".
type UpsertInput struct {
	RegistrationID string
	Date           time.Time
	Name           string
	Lunch          *int
	Dinner         *int
	LunchTakenOn   *time.Time
	DinnerTakenOn  *time.Time
}

// Service is the single write path for recording meal check-ins.
type Service struct {
	store    store.Store
	registry *registry.Registry
	now      func() time.Time
}

// NewService creates the check-in service.
func NewService(s store.Store, r *registry.Registry) *Service {
	return &Service{store: s, registry: r, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upsert records a check-in.
//
// Special registrations and "master" scans always insert a fresh row, so
// repeated group check-ins are unlimited. Ordinary registrations converge to
// a single row per (registration_id, calendar date) via an atomic
// insert-on-conflict write with full-replace semantics: the latest call wins
// for all five mutable fields.
func (s *Service) Upsert(ctx context.Context, in UpsertInput) (*model.FoodLog, error) {
	if in.RegistrationID == "" {
		return nil, fmt.Errorf("%w: registration_id is required", ErrValidation)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	day := DateOnly(in.Date)
	row := &model.FoodLog{
		RegistrationID: in.RegistrationID,
		LogDate:        day,
		Name:           in.Name,
		Lunch:          in.Lunch,
		Dinner:         in.Dinner,
		LunchTakenOn:   in.LunchTakenOn,
		DinnerTakenOn:  in.DinnerTakenOn,
	}
	// A supplied flag without a timestamp defaults to the scan moment.
	if row.Lunch != nil && row.LunchTakenOn == nil {
		now := s.now()
		row.LunchTakenOn = &now
	}
	if row.Dinner != nil && row.DinnerTakenOn == nil {
		now := s.now()
		row.DinnerTakenOn = &now
	}

	if s.registry.IsSpecial(in.RegistrationID) || strings.EqualFold(in.Name, masterName) {
		row.ScanKey = "scan-" + uuid.NewString()
		if err := s.store.InsertFoodLog(ctx, row); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStorage, err)
		}
		return row, nil
	}

	row.ScanKey = ScanKey(in.RegistrationID, day)
	if err := s.store.UpsertFoodLog(ctx, row); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorage, err)
	}
	// Read back the converged row so callers see the stored state regardless
	// of which branch the conflict clause took.
	stored, err := s.store.FoodLogByScanKey(ctx, row.ScanKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorage, err)
	}
	if stored == nil {
		return row, nil
	}
	return stored, nil
}

// BySchedule returns the food logs for a registration on a calendar date.
// Special registrations may yield many rows (one per scan); ordinary
// registrations yield at most one. No rows is an empty slice, not an error.
func (s *Service) BySchedule(ctx context.Context, registrationID string, date time.Time) ([]model.FoodLog, error) {
	if registrationID == "" {
		return nil, fmt.Errorf("%w: registration_id is required", ErrValidation)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	day := DateOnly(date)

	if !s.registry.IsSpecial(registrationID) {
		registrantID, err := strconv.ParseInt(registrationID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid registration ID format %q", ErrValidation, registrationID)
		}
		exists, err := s.store.ParticipantExists(ctx, registrantID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrStorage, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: participant %d", ErrNotFound, registrantID)
		}
	}

	rows, err := s.store.FoodLogsBySchedule(ctx, registrationID, day)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorage, err)
	}
	return rows, nil
}

// DateOnly truncates a timestamp to its calendar date at midnight UTC. All
// stored log dates pass through here so equality lookups are exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ScanKey derives the deterministic uniqueness key for an ordinary
// registration's daily row.
func ScanKey(registrationID string, day time.Time) string {
	return registrationID + "@" + day.Format("2006-01-02")
}
