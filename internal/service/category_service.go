package service

import (
	"context"
	"fmt"

	"medibook/internal/model"
	"medibook/internal/repository"
)

// defaultCategories is the baseline specialization set installed by seeding.
var defaultCategories = []string{
	"Cardiology",
	"Dermatology",
	"General Medicine",
	"Gynecology",
	"Neurology",
	"Ophthalmology",
	"Orthopedics",
	"Pediatrics",
	"Psychiatry",
	"Radiology",
}

// CategoryService serves the category reference data.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	// SeedDefaults installs the default category set, skipping names that
	// already exist, and returns how many were examined.
	SeedDefaults(ctx context.Context) (int, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) SeedDefaults(ctx context.Context) (int, error) {
	for _, name := range defaultCategories {
		if _, err := s.categoryRepo.FirstOrCreate(ctx, name); err != nil {
			return 0, fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return len(defaultCategories), nil
}
