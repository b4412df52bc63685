package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carlog/internal/model"
)

// ServiceRecordRepository defines service record persistence operations.
// Records are append-only; there is no update or delete.
type ServiceRecordRepository interface {
	Create(ctx context.Context, record *model.ServiceRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceRecord, error)
}

type serviceRecordRepository struct {
	db *gorm.DB
}

// NewServiceRecordRepository builds a GORM-backed repository.
func NewServiceRecordRepository(db *gorm.DB) ServiceRecordRepository {
	return &serviceRecordRepository{db: db}
}

func (r *serviceRecordRepository) Create(ctx context.Context, record *model.ServiceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *serviceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceRecord, error) {
	var record model.ServiceRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
