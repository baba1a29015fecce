package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User is the owner of all other resources. Every query for debts,
// reserves, cards and ledger transactions is scoped to exactly one user.
type User struct {
	DefaultModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Active       bool   `gorm:"default:true"`
}

var (
	ErrUserEmailRequired = errors.New("the email must be set")
	ErrUserNameRequired  = errors.New("the name must be set")
	ErrEmailAlreadyInUse = errors.New("this email is already registered")
	ErrUserInactive      = errors.New("this user has been deactivated")
)

// BeforeSave normalizes the email so that lookups are case insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if u.Email == "" {
		return ErrUserEmailRequired
	}

	if u.Name == "" {
		return ErrUserNameRequired
	}

	return nil
}

// UserByEmail returns the user registered with the email address.
func UserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	err := db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	return user, err
}
