package storage

import (
	"complaintbox/backend/internal/models"
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrUserNotFound is returned by the user lookups when no account matches.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the identity store: account records keyed by id and unique email.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// ComplaintFilter narrows ListComplaints. Zero values match everything.
type ComplaintFilter struct {
	// OwnerID limits results to complaints created by this user.
	OwnerID string
	// Status limits results to complaints in this status.
	Status models.Status
}

// ComplaintStore is the complaint repository. Every mutation matches by id,
// applies only its own columns and returns the complaint as stored afterwards.
type ComplaintStore interface {
	CreateComplaint(ctx context.Context, complaint *models.Complaint) error
	FindComplaint(ctx context.Context, id string) (*models.Complaint, error)
	ListComplaints(ctx context.Context, filter ComplaintFilter) ([]models.Complaint, error)

	UpdateComplaintStatus(ctx context.Context, id string, status models.Status, at time.Time) (*models.Complaint, error)
	AppendComplaintResponse(ctx context.Context, id string, response models.ComplaintResponse) (*models.Complaint, error)
	SetComplaintFeedback(ctx context.Context, id string, feedback models.Feedback, at time.Time) (*models.Complaint, error)
}

// LoginAttempts counts login attempts per email inside an expiry window.
// RecordLoginAttempt is a single atomic increment, so its result is the
// throttle decision; a successful login resets the counter.
type LoginAttempts interface {
	RecordLoginAttempt(ctx context.Context, email string, window time.Duration) (int64, error)
	ResetLoginFailures(ctx context.Context, email string) error
}

type Storage interface {
	UserStore
	ComplaintStore
	LoginAttempts
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStorageService Constructor. rdb may be nil, which disables login throttling.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

// Migrate creates or updates the tables for every persisted model.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.ComplaintResponse{},
	)
}

// Close releases the database pool and the Redis client.
func (s *Service) Close() error {
	var errs []error
	if sqlDB, err := s.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	} else {
		errs = append(errs, err)
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	return errors.Join(errs...)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
