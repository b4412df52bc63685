package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carlog/internal/auth"
	apperrors "carlog/internal/errors"
	"carlog/internal/model"
	"carlog/internal/repository"
	"carlog/internal/validation"
)

// RecalculateFunc is the extension point for the downstream prediction
// engine, invoked after a successful service record insert. The default
// implementation does nothing.
type RecalculateFunc func(ctx context.Context, vehicleID uuid.UUID) error

// HistoryService is the creation pipeline for service and accident records.
type HistoryService interface {
	CreateServiceRecord(ctx context.Context, principal *auth.Principal, rawVehicleID string, in *validation.ServiceRecordInput) (*model.ServiceRecord, error)
	CreateAccidentHistory(ctx context.Context, principal *auth.Principal, rawVehicleID string, in *validation.AccidentHistoryInput) (*model.AccidentHistory, error)
}

type historyService struct {
	guard     *OwnershipGuard
	gateway   *validation.Gateway
	services  repository.ServiceRecordRepository
	accidents repository.AccidentHistoryRepository
	now       func() time.Time
	recalc    RecalculateFunc
	logger    *zap.Logger
}

// Option configures a HistoryService at construction time.
type Option func(*historyService)

// WithRecalculate wires the prediction recalculation hook.
func WithRecalculate(fn RecalculateFunc) Option {
	return func(s *historyService) {
		if fn != nil {
			s.recalc = fn
		}
	}
}

// NewHistoryService creates a new history service with a no-op prediction
// hook. Use WithRecalculate to wire a real implementation.
func NewHistoryService(
	guard *OwnershipGuard,
	gateway *validation.Gateway,
	services repository.ServiceRecordRepository,
	accidents repository.AccidentHistoryRepository,
	logger *zap.Logger,
	opts ...Option,
) HistoryService {
	s := &historyService{
		guard:     guard,
		gateway:   gateway,
		services:  services,
		accidents: accidents,
		now:       func() time.Time { return time.Now().UTC() },
		recalc:    func(ctx context.Context, vehicleID uuid.UUID) error { return nil },
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateServiceRecord runs the authorize, validate, rule-check, persist
// pipeline for a maintenance entry.
func (s *historyService) CreateServiceRecord(ctx context.Context, principal *auth.Principal, rawVehicleID string, in *validation.ServiceRecordInput) (*model.ServiceRecord, error) {
	vehicle, err := s.guard.RequireOwnedVehicle(ctx, principal, rawVehicleID)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.ValidateServiceRecord(in); err != nil {
		return nil, err
	}

	createdAt := s.now()
	// A service dated exactly at the creation instant is accepted; only a
	// strictly later date violates the rule.
	if in.ServiceDate.After(createdAt) {
		return nil, apperrors.ErrFutureServiceDate
	}

	record := &model.ServiceRecord{
		VehicleID:        vehicle.ID,
		ServiceType:      in.ServiceType,
		ServiceDate:      in.ServiceDate,
		MileageAtService: *in.MileageAtService,
		Cost:             in.Cost,
		ServiceProvider:  in.ServiceProvider,
		ServiceLocation:  in.ServiceLocation,
		Notes:            in.Notes,
		CreatedAt:        createdAt,
		CreatedBy:        principal.UserID,
	}

	if err := s.services.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create service record: %w", err)
	}

	created, err := s.services.FindByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("read created service record: %w", err)
	}

	// The record is already durable; a failing recalculation must not fail
	// the request.
	if err := s.recalc(ctx, vehicle.ID); err != nil {
		s.logger.Warn("prediction recalculation failed",
			zap.String("vehicle_id", vehicle.ID.String()),
			zap.Error(err),
		)
	}

	return created, nil
}

// CreateAccidentHistory runs the same pipeline for an accident entry. There
// is no temporal rule for accident dates.
func (s *historyService) CreateAccidentHistory(ctx context.Context, principal *auth.Principal, rawVehicleID string, in *validation.AccidentHistoryInput) (*model.AccidentHistory, error) {
	vehicle, err := s.guard.RequireOwnedVehicle(ctx, principal, rawVehicleID)
	if err != nil {
		return nil, err
	}

	if err := s.gateway.ValidateAccidentHistory(in); err != nil {
		return nil, err
	}

	record := &model.AccidentHistory{
		VehicleID:          vehicle.ID,
		AccidentDate:       in.AccidentDate,
		AccidentLocation:   in.AccidentLocation,
		Description:        in.Description,
		EstimatedCost:      in.EstimatedCost,
		InsuranceClaim:     in.InsuranceClaim,
		PoliceReportNumber: in.PoliceReportNumber,
		Severity:           in.Severity,
		CreatedAt:          s.now(),
		CreatedBy:          principal.UserID,
	}

	if err := s.accidents.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create accident history: %w", err)
	}

	created, err := s.accidents.FindByID(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("read created accident history: %w", err)
	}
	return created, nil
}
