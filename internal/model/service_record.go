package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRecord is a maintenance entry attached to a vehicle. Records are
// immutable once created; there are no update or delete paths.
type ServiceRecord struct {
	ID               uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	VehicleID        uuid.UUID `json:"vehicle_id" gorm:"type:char(36);not null;index"`
	ServiceType      string    `json:"service_type" gorm:"size:64;not null"`
	ServiceDate      time.Time `json:"service_date" gorm:"not null"`
	MileageAtService int       `json:"mileage_at_service" gorm:"not null"`
	Cost             *float64  `json:"cost"`
	ServiceProvider  *string   `json:"service_provider" gorm:"size:255"`
	ServiceLocation  *string   `json:"service_location" gorm:"size:255"`
	Notes            *string   `json:"notes" gorm:"size:1024"`
	CreatedAt        time.Time `json:"created_at"`
	CreatedBy        uuid.UUID `json:"created_by" gorm:"type:char(36);not null"`
}

// BeforeCreate sets UUID before creating the record.
func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
