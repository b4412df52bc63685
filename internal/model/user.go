package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account holder.
type User struct {
	ID             uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email          string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName       string     `json:"full_name" gorm:"size:255;not null"`
	PhoneNumber    *string    `json:"phone_number,omitempty" gorm:"size:32"`
	TelegramChatID *string    `json:"telegram_chat_id,omitempty" gorm:"size:64"`
	Role           string     `json:"role" gorm:"size:16;default:'user';not null"`
	IsActive       bool       `json:"is_active" gorm:"default:true;not null"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
