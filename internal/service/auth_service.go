package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"medibook/internal/auth"
	"medibook/internal/calendar"
	"medibook/internal/model"
	"medibook/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// LoginResult carries everything the client needs to render the continuation
// screen without another round trip: tokens, display data, and the calendar
// consent URL.
type LoginResult struct {
	AccessToken    string
	RefreshToken   string
	AuthURL        string
	UserID         uint
	FullName       string
	ProfilePicture string
	IsPatient      bool
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo      repository.UserRepository
	jwtService    *auth.JWTService
	tokenStore    auth.TokenStoreInterface
	calendarStore auth.CalendarTokenStoreInterface
	provider      calendar.Provider
	defaultAvatar string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore *auth.TokenStore,
	provider calendar.Provider,
	defaultAvatar string,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		jwtService:    jwtService,
		tokenStore:    tokenStore,
		calendarStore: tokenStore,
		provider:      provider,
		defaultAvatar: defaultAvatar,
	}
}

// Login authenticates an account, issues session tokens, and hands back the
// provider consent URL for the calendar credential flow.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	avatar := s.avatarFor(ctx, user)

	return &LoginResult{
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
		AuthURL:        s.provider.AuthCodeURL(uuid.NewString()),
		UserID:         user.ID,
		FullName:       user.FullName(),
		ProfilePicture: avatar,
		IsPatient:      user.IsPatient,
	}, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout invalidates the refresh token and drops any cached calendar credential.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return err
	}
	return s.calendarStore.DeleteCalendarToken(ctx, claims.UserID)
}

func (s *authService) avatarFor(ctx context.Context, user *model.User) string {
	loaded, err := s.userRepo.FindByIDWithProfile(ctx, user.ID)
	if err != nil || loaded.Profile == nil || loaded.Profile.ProfilePicture == "" {
		return s.defaultAvatar
	}
	return loaded.Profile.ProfilePicture
}
