package repository

import (
	"context"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// DoctorRepository defines doctor record persistence operations.
type DoctorRepository interface {
	// FindByUserID resolves the doctor record through the profile link,
	// failing with gorm.ErrRecordNotFound if any link in the chain is absent.
	FindByUserID(ctx context.Context, userID uint) (*model.Doctor, error)
	ListFiltered(ctx context.Context, categoryIDs []uint, location string, offset, limit int) ([]model.Doctor, int64, error)
}

type doctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository creates a new doctor repository.
func NewDoctorRepository(db *gorm.DB) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) FindByUserID(ctx context.Context, userID uint) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.WithContext(ctx).
		Joins("JOIN profiles ON profiles.id = doctors.profile_id").
		Where("profiles.user_id = ?", userID).
		Preload("Profile").
		Preload("Categories").
		First(&doctor).Error
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// ListFiltered returns doctors matching the given category ids and a location
// substring against profile city, state, or address, plus the unpaginated count.
func (r *doctorRepository) ListFiltered(ctx context.Context, categoryIDs []uint, location string, offset, limit int) ([]model.Doctor, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Doctor{}).
		Joins("JOIN profiles ON profiles.id = doctors.profile_id")

	if len(categoryIDs) > 0 {
		query = query.
			Joins("JOIN doctor_categories ON doctor_categories.doctor_id = doctors.id").
			Where("doctor_categories.category_id IN ?", categoryIDs).
			Distinct("doctors.*")
	}
	if location != "" {
		like := "%" + location + "%"
		query = query.Where("profiles.city LIKE ? OR profiles.state LIKE ? OR profiles.address LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var doctors []model.Doctor
	err := query.
		Preload("Profile").
		Preload("Profile.User").
		Preload("Categories").
		Offset(offset).Limit(limit).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}
