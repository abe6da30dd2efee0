package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/phynetix/grading-api/internal/model"
	"gorm.io/gorm"
)

type TestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Test, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	var test model.Test
	if err := r.db.WithContext(ctx).First(&test, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &test, nil
}
