package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mealtrack-backend/internal/model"
)

// ErrorLogFilter narrows an error-log listing. Nil/zero fields are ignored.
type ErrorLogFilter struct {
	UserID       *int64
	RegistrantID *int64
	ErrorCode    string
	StartDate    *time.Time
	EndDate      *time.Time
	Skip         int
	Limit        int
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Food logs.
	InsertFoodLog(ctx context.Context, row *model.FoodLog) error
	UpsertFoodLog(ctx context.Context, row *model.FoodLog) error
	FoodLogByScanKey(ctx context.Context, scanKey string) (*model.FoodLog, error)
	FoodLogsBySchedule(ctx context.Context, registrationID string, day time.Time) ([]model.FoodLog, error)

	// Audit logs.
	UpsertAuditLog(ctx context.Context, row *model.AuditLog) error
	AuditLogBySchedule(ctx context.Context, registrantID int64, day time.Time) (*model.AuditLog, error)
	AuditLogsByEntity(ctx context.Context, entityID int64) ([]model.AuditLog, error)
	AuditLogsByRegistration(ctx context.Context, registrantID int64) ([]model.AuditLog, error)

	// Participants.
	ParticipantExists(ctx context.Context, registrantID int64) (bool, error)
	ParticipantBySchedule(ctx context.Context, registrantID int64, day time.Time) (*model.Participant, error)
	ListParticipants(ctx context.Context, skip, limit int) ([]model.Participant, error)

	// Error logs.
	CreateErrorLog(ctx context.Context, row *model.ErrorLog) error
	ListErrorLogs(ctx context.Context, filter ErrorLogFilter) ([]model.ErrorLog, error)

	// Users.
	CreateUser(ctx context.Context, user *model.User) error
	UserByUsername(ctx context.Context, username string) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]model.User, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for migration and test setup.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// InsertFoodLog appends a new food log row unconditionally. Used for
// special/master scans where every check-in is an independent event.
func (s *gormStore) InsertFoodLog(ctx context.Context, row *model.FoodLog) error {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("insert food log for %s: %w", row.RegistrationID, err)
	}
	return nil
}

// UpsertFoodLog writes a food log row atomically: a conflict on the scan key
// replaces all mutable fields (last-write-wins), otherwise a new row is
// created. There is no read-then-write window.
func (s *gormStore) UpsertFoodLog(ctx context.Context, row *model.FoodLog) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scan_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "lunch", "dinner", "lunch_taken_on", "dinner_taken_on", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert food log for %s: %w", row.RegistrationID, err)
	}
	return nil
}

// FoodLogByScanKey fetches a single row by its scan key, or nil when absent.
func (s *gormStore) FoodLogByScanKey(ctx context.Context, scanKey string) (*model.FoodLog, error) {
	var row model.FoodLog
	err := s.db.WithContext(ctx).Where("scan_key = ?", scanKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch food log %s: %w", scanKey, err)
	}
	return &row, nil
}

// FoodLogsBySchedule returns all rows for a registration on a calendar date,
// oldest first. Special registrations may have many; ordinary at most one.
func (s *gormStore) FoodLogsBySchedule(ctx context.Context, registrationID string, day time.Time) ([]model.FoodLog, error) {
	var rows []model.FoodLog
	err := s.db.WithContext(ctx).
		Where("registration_id = ? AND log_date = ?", registrationID, day).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch food logs for %s: %w", registrationID, err)
	}
	return rows, nil
}

// UpsertAuditLog writes a registrant's daily entitlement state atomically: a
// conflict on (registration_id, log_date) replaces the mutable fields,
// otherwise a new row is created.
func (s *gormStore) UpsertAuditLog(ctx context.Context, row *model.AuditLog) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "registration_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"entity_id", "entitlement_type", "name", "lunch", "dinner",
			"lunch_taken_on", "dinner_taken_on", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert audit log for %d: %w", row.RegistrationID, err)
	}
	return nil
}

// AuditLogBySchedule fetches the single row for a registrant on a calendar
// date, or nil when absent.
func (s *gormStore) AuditLogBySchedule(ctx context.Context, registrantID int64, day time.Time) (*model.AuditLog, error) {
	var row model.AuditLog
	err := s.db.WithContext(ctx).
		Where("registration_id = ? AND log_date = ?", registrantID, day).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch audit log for %d: %w", registrantID, err)
	}
	return &row, nil
}

func (s *gormStore) AuditLogsByEntity(ctx context.Context, entityID int64) ([]model.AuditLog, error) {
	var rows []model.AuditLog
	err := s.db.WithContext(ctx).
		Where("entity_id = ?", entityID).
		Order("log_date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch audit logs for entity %d: %w", entityID, err)
	}
	return rows, nil
}

func (s *gormStore) AuditLogsByRegistration(ctx context.Context, registrantID int64) ([]model.AuditLog, error) {
	var rows []model.AuditLog
	err := s.db.WithContext(ctx).
		Where("registration_id = ?", registrantID).
		Order("log_date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch audit logs for %d: %w", registrantID, err)
	}
	return rows, nil
}

func (s *gormStore) ParticipantExists(ctx context.Context, registrantID int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("registrant_id = ?", registrantID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check participant %d: %w", registrantID, err)
	}
	return count > 0, nil
}

func (s *gormStore) ParticipantBySchedule(ctx context.Context, registrantID int64, day time.Time) (*model.Participant, error) {
	var row model.Participant
	err := s.db.WithContext(ctx).
		Where("registrant_id = ? AND date >= ? AND date < ?", registrantID, day, day.AddDate(0, 0, 1)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch participant %d: %w", registrantID, err)
	}
	return &row, nil
}

func (s *gormStore) ListParticipants(ctx context.Context, skip, limit int) ([]model.Participant, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []model.Participant
	err := s.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return rows, nil
}

// CreateErrorLog appends an error log row. Rows are never updated afterwards.
func (s *gormStore) CreateErrorLog(ctx context.Context, row *model.ErrorLog) error {
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("create error log: %w", err)
	}
	return nil
}

func (s *gormStore) ListErrorLogs(ctx context.Context, filter ErrorLogFilter) ([]model.ErrorLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	q := s.db.WithContext(ctx).Model(&model.ErrorLog{})
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.RegistrantID != nil {
		q = q.Where("registrant_id = ?", *filter.RegistrantID)
	}
	if filter.ErrorCode != "" {
		q = q.Where("error_code = ?", filter.ErrorCode)
	}
	if filter.StartDate != nil {
		q = q.Where("scan_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		// End date is a calendar day; include the whole day.
		q = q.Where("scan_time < ?", filter.EndDate.AddDate(0, 0, 1))
	}
	var rows []model.ErrorLog
	err := q.Order("scan_time DESC").Offset(filter.Skip).Limit(filter.Limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list error logs: %w", err)
	}
	return rows, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}

func (s *gormStore) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userBy(ctx, "username = ?", username)
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userBy(ctx, "email = ?", email)
}

func (s *gormStore) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userBy(ctx, "id = ?", id)
}

func (s *gormStore) userBy(ctx context.Context, cond string, arg any) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

func (s *gormStore) ListUsers(ctx context.Context, skip, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []model.User
	err := s.db.WithContext(ctx).Order("id").Offset(skip).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return rows, nil
}
