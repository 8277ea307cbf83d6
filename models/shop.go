package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Avatar references an asset on the external media host.
type Avatar struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type Shop struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Password    string    `json:"-"` // bcrypt hash
	Description string    `json:"description"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phone_number"`
	ZipCode     string    `json:"zip_code"`
	Role        string    `json:"role" gorm:"default:'Seller'"`
	Avatar      Avatar    `json:"avatar" gorm:"embedded;embeddedPrefix:avatar_"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ComparePassword reports whether candidate matches the stored hash.
func (s *Shop) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(candidate)) == nil
}
