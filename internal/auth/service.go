// Package auth registers users, verifies their credentials and resolves
// bearer session tokens back to accounts.
package auth

import (
	"complaintbox/backend/internal/apperror"
	"complaintbox/backend/internal/config"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Session is the credential returned by Register and Login.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterInput carries the profile of a new account.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       models.Role
	Department *string
	StudentID  *string
}

// Options tune login throttling and hashing. Zero values fall back to defaults.
type Options struct {
	MaxAttempts   int
	AttemptWindow time.Duration
	BcryptCost    int
}

// Service is the authenticator.
type Service struct {
	users    storage.UserStore
	attempts storage.LoginAttempts
	tokens   *TokenIssuer

	maxAttempts   int
	attemptWindow time.Duration
	bcryptCost    int
}

// NewService wires the authenticator. attempts may be nil to disable throttling.
func NewService(users storage.UserStore, attempts storage.LoginAttempts, tokens *TokenIssuer, opts Options) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = config.DefaultLoginMaxAttempts
	}
	if opts.AttemptWindow <= 0 {
		opts.AttemptWindow = config.DefaultLoginAttemptWindow
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:         users,
		attempts:      attempts,
		tokens:        tokens,
		maxAttempts:   opts.MaxAttempts,
		attemptWindow: opts.AttemptWindow,
		bcryptCost:    opts.BcryptCost,
	}
}

// NormalizeEmail trims and lower-cases an address; emails are stored this way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns a session for it.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, *models.User, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateRegistration(in); err != nil {
		return nil, nil, err
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, nil, apperror.ErrDuplicateIdentity
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, nil, err
	}

	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Department:   in.Department,
		StudentID:    in.StudentID,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}
	log.Printf("INFO: New %s %s registered.", user.Role, user.ID)

	session, err := s.issue(user)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

func validateRegistration(in RegisterInput) error {
	if in.Name == "" {
		return apperror.Validation("name is required")
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return apperror.Validation("invalid email format")
	}
	if !in.Role.Valid() {
		return apperror.Validation("role must be one of: student, admin")
	}
	if utf8.RuneCountInString(in.Password) < config.MinPasswordLength {
		return apperror.Validation("password must be at least %d characters", config.MinPasswordLength)
	}
	if len(in.Password) > maxPasswordBytes {
		return apperror.Validation("password must be at most %d bytes", maxPasswordBytes)
	}
	return nil
}

// Login checks the credentials. Unknown email and wrong password return the
// same apperror.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)

	if !s.reserveAttempt(ctx, email) {
		return nil, apperror.ErrTooManyAttempts
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}
	if user == nil {
		burnPasswordCheck(password)
		return nil, apperror.ErrInvalidCredentials
	}
	if !checkPassword(user.PasswordHash, password) {
		return nil, apperror.ErrInvalidCredentials
	}

	if s.attempts != nil {
		if err := s.attempts.ResetLoginFailures(ctx, email); err != nil {
			log.Printf("WARNING: Failed to reset login failures for %s: %v", email, err)
		}
	}
	return s.issue(user)
}

// Resolve maps a bearer token to the account it was issued for.
func (s *Service) Resolve(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Subject(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, apperror.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) issue(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: token, TokenType: "bearer"}, nil
}

// reserveAttempt counts this attempt before the password is checked, so
// concurrent guesses cannot get past maxAttempts.
// Помилки Redis не блокують вхід: лічильник лише захищає від перебору.
func (s *Service) reserveAttempt(ctx context.Context, email string) bool {
	if s.attempts == nil {
		return true
	}
	n, err := s.attempts.RecordLoginAttempt(ctx, email, s.attemptWindow)
	if err != nil {
		log.Printf("WARNING: Failed to record login attempt for %s: %v", email, err)
		return true
	}
	return n <= int64(s.maxAttempts)
}
