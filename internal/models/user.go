// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email                  string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash           string     `json:"-" gorm:"size:255;not null"`
	FirstName              string     `json:"first_name" gorm:"size:100"`
	LastName               string     `json:"last_name" gorm:"size:100"`
	Role                   Role       `json:"role" gorm:"type:varchar(20);not null;default:'viewer'"`
	BusinessID             uuid.UUID  `json:"business_id" gorm:"type:uuid;not null;index"`
	IsActive               bool       `json:"is_active" gorm:"default:true"`
	PasswordChangeRequired bool       `json:"password_change_required" gorm:"default:false"`
	TempPasswordExpiresAt  *time.Time `json:"temp_password_expires_at,omitempty"`
	InvitationSentAt       *time.Time `json:"invitation_sent_at,omitempty"`

	// Relationships
	Business        *Business     `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	CreatedProducts []Product     `json:"created_products,omitempty" gorm:"foreignKey:CreatedByID"`
	ChatMessages    []ChatMessage `json:"chat_messages,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// TempPasswordExpired reports whether the user's temporary credential has
// lapsed. Users without an expiry timestamp never expire.
func (u *User) TempPasswordExpired(now time.Time) bool {
	return u.TempPasswordExpiresAt != nil && now.After(*u.TempPasswordExpiresAt)
}
