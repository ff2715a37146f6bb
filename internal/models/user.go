package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account that owns recipes.
type User struct {
	ID           string   `gorm:"primaryKey;type:varchar(36)"`
	Username     string   `gorm:"uniqueIndex;not null;type:varchar(100);check:chk_users_username,username <> ''" validate:"required"`
	Bio          string   `gorm:"type:text"`
	ImageURL     string   `gorm:"type:varchar(255)"`
	PasswordHash string   `gorm:"not null;type:varchar(255)"` // bcrypt, never serialized
	Recipes      []Recipe `gorm:"constraint:OnDelete:CASCADE" validate:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SetPassword hashes plain with bcrypt and stores the hash.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether plain matches the stored hash.
func (u *User) VerifyPassword(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
