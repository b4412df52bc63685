package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Severity values accepted for AccidentHistory.Severity.
const (
	SeverityMinor     = "minor"
	SeverityModerate  = "moderate"
	SeveritySevere    = "severe"
	SeverityTotalLoss = "total_loss"
)

// AccidentHistory is an accident entry attached to a vehicle. Same
// immutability contract as ServiceRecord.
type AccidentHistory struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	VehicleID          uuid.UUID `json:"vehicle_id" gorm:"type:char(36);not null;index"`
	AccidentDate       time.Time `json:"accident_date" gorm:"not null"`
	AccidentLocation   *string   `json:"accident_location" gorm:"size:255"`
	Description        string    `json:"description" gorm:"size:1024;not null"`
	EstimatedCost      *float64  `json:"estimated_cost"`
	InsuranceClaim     bool      `json:"insurance_claim" gorm:"default:false;not null"`
	PoliceReportNumber *string   `json:"police_report_number" gorm:"size:64"`
	Severity           *string   `json:"severity" gorm:"size:16"`
	CreatedAt          time.Time `json:"created_at"`
	CreatedBy          uuid.UUID `json:"created_by" gorm:"type:char(36);not null"`
}

// BeforeCreate sets UUID before creating the record.
func (a *AccidentHistory) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
