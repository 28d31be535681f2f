package repository

import (
	"context"

	"gorm.io/gorm"

	"medibook/internal/model"
)

// UserRepository defines account persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// CreateWithProfile persists the account, its profile, and the optional
	// doctor record with its category set as one transaction. Nothing is
	// visible to readers unless all writes succeed.
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile, doctor *model.Doctor, categories []model.Category) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDWithProfile(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile, doctor *model.Doctor, categories []model.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		if doctor == nil {
			return nil
		}
		doctor.ProfileID = profile.ID
		doctor.Categories = categories
		// Omit category upserts; only join rows are created for the
		// already-existing reference data.
		return tx.Omit("Categories.*").Create(doctor).Error
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithProfile loads the account with its profile chain, doctor record
// and categories included.
func (r *userRepository) FindByIDWithProfile(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Profile.DoctorProfile").
		Preload("Profile.DoctorProfile.Categories").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
