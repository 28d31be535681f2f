package repository

import (
	"context"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// CategoryRepository defines category reference-data operations.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Category, error)
	FirstOrCreate(ctx context.Context, name string) (*model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FirstOrCreate(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&category, model.Category{Name: name}).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
