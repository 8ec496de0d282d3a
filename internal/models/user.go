package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. It never changes after registration.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin:
		return true
	}
	return false
}

// User представляє обліковий запис студента або адміністратора.
// PasswordHash ніколи не серіалізується назовні.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	Role         Role      `gorm:"type:varchar(16);not null" json:"role"`
	Department   *string   `json:"department"`
	StudentID    *string   `gorm:"column:student_number" json:"studentId"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// BeforeCreate є хуком GORM, який викликається перед створенням запису.
// Генерує новий UUID для користувача, якщо ID ще не встановлено.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Identity returns the actor view of the user used for authorization decisions.
func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID,
		Role:  u.Role,
		Name:  u.Name,
		Email: u.Email,
	}
}

// Identity is the authenticated actor of a request.
type Identity struct {
	ID    string
	Role  Role
	Name  string
	Email string
}

// IsAdmin reports whether the actor holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
