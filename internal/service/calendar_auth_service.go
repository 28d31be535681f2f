package service

import (
	"context"
	"fmt"

	"medibook/internal/auth"
	"medibook/internal/calendar"
	"medibook/internal/errors"
)

// CalendarAuthService is the credential broker: it turns a provider callback
// code into a usable access credential and caches it per account. It never
// touches appointment data.
type CalendarAuthService interface {
	// HandleCallback exchanges the authorization code and caches the resulting
	// credential for the account.
	HandleCallback(ctx context.Context, userID uint, code string) (accessToken string, err error)
	// ResolveAccessToken prefers the explicitly supplied token and falls back
	// to the cached credential. Returns "" when neither exists.
	ResolveAccessToken(ctx context.Context, userID uint, provided string) (string, error)
}

type calendarAuthService struct {
	provider calendar.Provider
	store    auth.CalendarTokenStoreInterface
}

// NewCalendarAuthService creates a new calendar credential broker.
func NewCalendarAuthService(provider calendar.Provider, store auth.CalendarTokenStoreInterface) CalendarAuthService {
	return &calendarAuthService{provider: provider, store: store}
}

func (s *calendarAuthService) HandleCallback(ctx context.Context, userID uint, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("%w: missing authorization code", errors.ErrValidation)
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		// Re-consent is the remediation, so this must surface distinctly from
		// internal validation failures.
		return "", fmt.Errorf("%w: %v", errors.ErrExternalAuth, err)
	}

	if err := s.store.StoreCalendarToken(ctx, userID, token); err != nil {
		return "", fmt.Errorf("store calendar token: %w", err)
	}
	return token.AccessToken, nil
}

func (s *calendarAuthService) ResolveAccessToken(ctx context.Context, userID uint, provided string) (string, error) {
	if provided != "" {
		return provided, nil
	}
	token, err := s.store.GetCalendarToken(ctx, userID)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", nil
	}
	return token.AccessToken, nil
}
