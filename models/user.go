package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a buyer account. Buyers are created out of band in this service;
// the model exists so sessions and the admin role gate can resolve them.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	Password  string    `json:"-"`
	Role      string    `json:"role" gorm:"default:'user'"` // user or Admin
	Avatar    Avatar    `json:"avatar" gorm:"embedded;embeddedPrefix:avatar_"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}
