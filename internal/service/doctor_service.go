package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

// DoctorView is the directory projection for one doctor.
type DoctorView struct {
	UserID            uint             `json:"user_id"`
	FullName          string           `json:"full_name"`
	Email             string           `json:"email"`
	ProfilePicture    string           `json:"profile_picture"`
	Address           string           `json:"address"`
	City              string           `json:"city"`
	State             string           `json:"state"`
	Pincode           int              `json:"pincode"`
	EstablishmentName string           `json:"establishment_name,omitempty"`
	LicenseNumber     string           `json:"license_number,omitempty"`
	Categories        []model.Category `json:"categories"`
}

// DoctorDirectoryResult is the paginated discovery response.
type DoctorDirectoryResult struct {
	TotalCount int64            `json:"total_count"`
	Doctors    []DoctorView     `json:"doctors"`
	Categories []model.Category `json:"categories"`
}

// DoctorDetails is the doctor-only portion of a user details projection.
type DoctorDetails struct {
	EstablishmentName string           `json:"establishment_name,omitempty"`
	LicenseNumber     string           `json:"license_number,omitempty"`
	Categories        []model.Category `json:"categories"`
}

// UserDetails is the role-shaped projection of one account.
type UserDetails struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	IsPatient      bool           `json:"is_patient"`
	IsDoctor       bool           `json:"is_doctor"`
	ProfilePicture string         `json:"profile_picture"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	State          string         `json:"state"`
	Pincode        int            `json:"pincode"`
	Doctor         *DoctorDetails `json:"doctor_profile,omitempty"`
}

// DoctorService serves doctor discovery and account detail projections.
type DoctorService interface {
	ListFiltered(ctx context.Context, categoryIDs []uint, location string, offset, limit int) (*DoctorDirectoryResult, error)
	UserDetails(ctx context.Context, userID uint) (*UserDetails, error)
}

type doctorService struct {
	userRepo      repository.UserRepository
	doctorRepo    repository.DoctorRepository
	categoryRepo  repository.CategoryRepository
	defaultAvatar string
}

// NewDoctorService creates a new doctor service.
func NewDoctorService(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository, categoryRepo repository.CategoryRepository, defaultAvatar string) DoctorService {
	return &doctorService{
		userRepo:      userRepo,
		doctorRepo:    doctorRepo,
		categoryRepo:  categoryRepo,
		defaultAvatar: defaultAvatar,
	}
}

func (s *doctorService) ListFiltered(ctx context.Context, categoryIDs []uint, location string, offset, limit int) (*DoctorDirectoryResult, error) {
	doctors, total, err := s.doctorRepo.ListFiltered(ctx, dedupIDs(categoryIDs), location, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	views := make([]DoctorView, 0, len(doctors))
	for _, doctor := range doctors {
		view := DoctorView{
			UserID:            doctor.Profile.UserID,
			FullName:          doctor.Profile.User.FullName(),
			Email:             doctor.Profile.User.Email,
			ProfilePicture:    doctor.Profile.ProfilePicture,
			Address:           doctor.Profile.Address,
			City:              doctor.Profile.City,
			State:             doctor.Profile.State,
			Pincode:           doctor.Profile.Pincode,
			EstablishmentName: doctor.EstablishmentName,
			LicenseNumber:     doctor.LicenseNumber,
			Categories:        doctor.Categories,
		}
		if view.ProfilePicture == "" {
			view.ProfilePicture = s.defaultAvatar
		}
		if view.Categories == nil {
			view.Categories = []model.Category{}
		}
		views = append(views, view)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return &DoctorDirectoryResult{TotalCount: total, Doctors: views, Categories: categories}, nil
}

// UserDetails resolves the account with its full profile chain and shapes the
// response by role.
func (s *doctorService) UserDetails(ctx context.Context, userID uint) (*UserDetails, error) {
	user, err := s.userRepo.FindByIDWithProfile(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", errors.ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("resolve account: %w", err)
	}

	details := &UserDetails{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		IsPatient:      user.IsPatient,
		IsDoctor:       user.IsDoctor,
		ProfilePicture: s.defaultAvatar,
	}
	if user.Profile != nil {
		if user.Profile.ProfilePicture != "" {
			details.ProfilePicture = user.Profile.ProfilePicture
		}
		details.Address = user.Profile.Address
		details.City = user.Profile.City
		details.State = user.Profile.State
		details.Pincode = user.Profile.Pincode

		if user.IsDoctor && user.Profile.DoctorProfile != nil {
			doctor := user.Profile.DoctorProfile
			categories := doctor.Categories
			if categories == nil {
				categories = []model.Category{}
			}
			details.Doctor = &DoctorDetails{
				EstablishmentName: doctor.EstablishmentName,
				LicenseNumber:     doctor.LicenseNumber,
				Categories:        categories,
			}
		}
	}
	return details, nil
}
