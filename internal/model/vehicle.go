package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is an owned resource. This service only reads vehicles to verify
// ownership before attaching history records; vehicle management lives
// elsewhere.
type Vehicle struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Make         string    `json:"make" gorm:"size:64"`
	Model        string    `json:"model" gorm:"size:64"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate" gorm:"size:32"`
	CreatedAt    time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
