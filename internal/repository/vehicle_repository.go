package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carlog/internal/model"
)

// VehicleRepository defines vehicle read operations used for ownership
// checks, plus Create for the seeder.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	// FindByIDAndOwner filters by both id and owner in a single query so a
	// foreign vehicle is indistinguishable from a missing one.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Vehicle, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository builds a GORM-backed repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}
