package storage

import (
	"complaintbox/backend/internal/apperror"
	"complaintbox/backend/internal/models"
	"context"
	"errors"
	"log"

	"gorm.io/gorm"
)

// CreateUser inserts a new account. An email that is already registered
// yields apperror.ErrDuplicateIdentity and nothing is written.
func (s *Service) CreateUser(ctx context.Context, user *models.User) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperror.ErrDuplicateIdentity
		}
		return tx.Create(user).Error
	})
	if err != nil {
		// Унікальний індекс на email ловить гонку двох одночасних реєстрацій.
		if isUniqueViolation(err) {
			return apperror.ErrDuplicateIdentity
		}
		if !errors.Is(err, apperror.ErrDuplicateIdentity) {
			log.Printf("ERROR: Failed to save user %s: %v", user.Email, err)
		}
		return err
	}
	return nil
}

// GetUserByID повертає користувача за його UUID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

// GetUserByEmail повертає користувача за email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *Service) findUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to load user: %v", err)
		return nil, err
	}
	return &user, nil
}
