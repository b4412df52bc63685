package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"carlog/internal/auth"
	apperrors "carlog/internal/errors"
	"carlog/internal/model"
	"carlog/internal/repository"
)

// OwnershipGuard resolves the current principal and asserts it owns the
// target vehicle before any history mutation proceeds.
type OwnershipGuard struct {
	vehicles repository.VehicleRepository
}

// NewOwnershipGuard creates a new ownership guard.
func NewOwnershipGuard(vehicles repository.VehicleRepository) *OwnershipGuard {
	return &OwnershipGuard{vehicles: vehicles}
}

// RequireOwnedVehicle returns the vehicle when the principal owns it.
// Ownership is enforced as a query predicate, so a vehicle owned by someone
// else produces the same not-found error as a vehicle that does not exist.
func (g *OwnershipGuard) RequireOwnedVehicle(ctx context.Context, principal *auth.Principal, rawVehicleID string) (*model.Vehicle, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthorized
	}

	vehicleID, err := model.ParseID(rawVehicleID)
	if err != nil {
		return nil, err
	}

	vehicle, err := g.vehicles.FindByIDAndOwner(ctx, vehicleID, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return vehicle, nil
}
