package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carlog/internal/model"
)

// AccidentHistoryRepository defines accident history persistence operations.
type AccidentHistoryRepository interface {
	Create(ctx context.Context, record *model.AccidentHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AccidentHistory, error)
}

type accidentHistoryRepository struct {
	db *gorm.DB
}

// NewAccidentHistoryRepository builds a GORM-backed repository.
func NewAccidentHistoryRepository(db *gorm.DB) AccidentHistoryRepository {
	return &accidentHistoryRepository{db: db}
}

func (r *accidentHistoryRepository) Create(ctx context.Context, record *model.AccidentHistory) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *accidentHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AccidentHistory, error) {
	var record model.AccidentHistory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
