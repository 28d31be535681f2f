package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"medibook/internal/errors"
	"medibook/internal/model"
	"medibook/internal/repository"
)

const bcryptCost = 10

// RegisterInput is the provisioning payload. Doctor-only fields are ignored
// for patients.
type RegisterInput struct {
	Username       string
	Email          string
	FirstName      string
	LastName       string
	Password       string
	Role           model.Role
	ProfilePicture string
	Address        string
	City           string
	State          string
	Pincode        int

	CategoryIDs       []uint
	EstablishmentName string
	LicenseNumber     string
}

// RegistrationService provisions an account, its profile, and, for doctors,
// the specialization record as one logical unit.
type RegistrationService interface {
	Register(ctx context.Context, in *RegisterInput) (*model.User, error)
}

type registrationService struct {
	userRepo      repository.UserRepository
	categoryRepo  repository.CategoryRepository
	defaultAvatar string
}

// NewRegistrationService creates a new registration service.
func NewRegistrationService(userRepo repository.UserRepository, categoryRepo repository.CategoryRepository, defaultAvatar string) RegistrationService {
	return &registrationService{
		userRepo:      userRepo,
		categoryRepo:  categoryRepo,
		defaultAvatar: defaultAvatar,
	}
}

// Register validates the payload, then performs the account/profile/doctor
// writes inside a single transaction so a partial triple is never visible.
func (s *registrationService) Register(ctx context.Context, in *RegisterInput) (*model.User, error) {
	if in.Role != model.RolePatient && in.Role != model.RoleDoctor {
		return nil, fmt.Errorf("%w: select_role must be patient or doctor", errors.ErrValidation)
	}

	if err := s.checkUnique(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	// Resolve the category set before any write occurs.
	var categories []model.Category
	if in.Role == model.RoleDoctor {
		ids := dedupIDs(in.CategoryIDs)
		found, err := s.categoryRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve categories: %w", err)
		}
		if len(found) != len(ids) {
			return nil, fmt.Errorf("%w: one or more categories do not exist", errors.ErrValidation)
		}
		categories = found
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hashedPassword),
		IsPatient:    in.Role == model.RolePatient,
		IsDoctor:     in.Role == model.RoleDoctor,
	}

	avatar := in.ProfilePicture
	if avatar == "" {
		avatar = s.defaultAvatar
	}
	profile := &model.Profile{
		ProfilePicture: avatar,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		Pincode:        in.Pincode,
	}

	var doctor *model.Doctor
	if in.Role == model.RoleDoctor {
		doctor = &model.Doctor{
			EstablishmentName: in.EstablishmentName,
			LicenseNumber:     in.LicenseNumber,
		}
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile, doctor, categories); err != nil {
		// A concurrent registration can win the race past checkUnique; the
		// unique index then reports the same conflict.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrUserExists
		}
		return nil, fmt.Errorf("provision account: %w", err)
	}

	user.Profile = profile
	if doctor != nil {
		profile.DoctorProfile = doctor
	}
	return user, nil
}

func (s *registrationService) checkUnique(ctx context.Context, username, email string) error {
	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return errors.ErrUserExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check username: %w", err)
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return errors.ErrUserExists
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}

// dedupIDs drops duplicate category references while keeping submission order.
func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
