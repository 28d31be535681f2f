package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"medibook/internal/cache"
	"medibook/internal/calendar"
)

const (
	refreshTokenKeyPrefix  = "refresh_token:"
	calendarTokenKeyPrefix = "calendar_token:"

	// defaultCalendarTokenTTL caps how long a calendar credential without a
	// usable expiry is kept.
	defaultCalendarTokenTTL = time.Hour
)

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// CalendarTokenStoreInterface caches external calendar credentials keyed per
// account, the session-scoped half of the credential broker.
type CalendarTokenStoreInterface interface {
	StoreCalendarToken(ctx context.Context, userID uint, token *calendar.Token) error
	// GetCalendarToken returns nil without error when no credential is cached;
	// absence is handled by the booking orchestrator, not here.
	GetCalendarToken(ctx context.Context, userID uint) (*calendar.Token, error)
	DeleteCalendarToken(ctx context.Context, userID uint) error
}

// TokenStore handles storage and retrieval of tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements both store interfaces.
var (
	_ TokenStoreInterface         = (*TokenStore)(nil)
	_ CalendarTokenStoreInterface = (*TokenStore)(nil)
)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email string, ttl time.Duration) error {
	data := map[string]interface{}{
		"user_id": userID,
		"email":   email,
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}

	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (userID uint, email string, err error) {
	key := refreshTokenKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return 0, "", fmt.Errorf("refresh token not found")
	}

	var tokenData map[string]interface{}
	if err := json.Unmarshal(data, &tokenData); err != nil {
		return 0, "", fmt.Errorf("unmarshal token data: %w", err)
	}

	uid, ok := tokenData["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("invalid user_id in token data")
	}
	userID = uint(uid)

	email, ok = tokenData["email"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid email in token data")
	}

	return userID, email, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	key := refreshTokenKeyPrefix + tokenID
	return s.cache.Delete(ctx, key)
}

type calendarTokenData struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
}

// StoreCalendarToken caches the calendar credential for an account until it expires.
func (s *TokenStore) StoreCalendarToken(ctx context.Context, userID uint, token *calendar.Token) error {
	payload, err := json.Marshal(calendarTokenData{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	})
	if err != nil {
		return fmt.Errorf("marshal calendar token: %w", err)
	}

	ttl := defaultCalendarTokenTTL
	if !token.Expiry.IsZero() {
		if until := time.Until(token.Expiry); until > 0 {
			ttl = until
		}
	}

	key := fmt.Sprintf("%s%d", calendarTokenKeyPrefix, userID)
	return s.cache.Set(ctx, key, payload, ttl)
}

// GetCalendarToken returns the cached calendar credential, or nil when absent.
func (s *TokenStore) GetCalendarToken(ctx context.Context, userID uint) (*calendar.Token, error) {
	key := fmt.Sprintf("%s%d", calendarTokenKeyPrefix, userID)
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, nil
	}

	var stored calendarTokenData
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("unmarshal calendar token: %w", err)
	}
	return &calendar.Token{
		AccessToken:  stored.AccessToken,
		RefreshToken: stored.RefreshToken,
		Expiry:       stored.Expiry,
	}, nil
}

// DeleteCalendarToken drops the cached credential, e.g. on logout.
func (s *TokenStore) DeleteCalendarToken(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("%s%d", calendarTokenKeyPrefix, userID)
	return s.cache.Delete(ctx, key)
}
