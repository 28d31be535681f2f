package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medibook/internal/config"
)

func testConfig(authURL, tokenURL, eventsURL string) *config.Config {
	return &config.Config{
		CalendarClientID:     "client-id",
		CalendarClientSecret: "client-secret",
		CalendarRedirectURL:  "https://app.example.com/auth/google/callback",
		CalendarAuthURL:      authURL,
		CalendarTokenURL:     tokenURL,
		CalendarEventsURL:    eventsURL,
		CalendarTimeout:      5 * time.Second,
	}
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	provider := NewGoogleProvider(testConfig("https://accounts.example.com/auth", "https://accounts.example.com/token", ""))

	url := provider.AuthCodeURL("state-123")

	assert.Contains(t, url, "https://accounts.example.com/auth")
	assert.Contains(t, url, "access_type=offline")
	assert.Contains(t, url, "prompt=consent")
	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "client_id=client-id")
}

func TestGoogleProvider_Exchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "access-token",
			"refresh_token": "refresh-token",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer server.Close()

	provider := NewGoogleProvider(testConfig(server.URL+"/auth", server.URL+"/token", ""))

	token, err := provider.Exchange(context.Background(), "auth-code")

	assert.NoError(t, err)
	assert.Equal(t, "access-token", token.AccessToken)
	assert.Equal(t, "refresh-token", token.RefreshToken)
	assert.False(t, token.Expiry.IsZero())
}

func TestGoogleProvider_CreateEvent(t *testing.T) {
	var received eventRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/calendars/primary/events", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"htmlLink": "https://calendar.example.com/event/1"})
	}))
	defer server.Close()

	provider := NewGoogleProvider(testConfig("", "", server.URL))

	link, err := provider.CreateEvent(context.Background(), "access-token", &Event{
		Summary:        "Appointment with Dr. Jane Roe",
		Location:       "City Clinic",
		Description:    "Patient: John Doe",
		Date:           "2026-09-15",
		StartTime:      "09:00",
		EndTime:        "09:45",
		TimeZone:       "Asia/Kolkata",
		AttendeeEmails: []string{"patient@example.com", "doctor@example.com"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "https://calendar.example.com/event/1", link)

	assert.Equal(t, "Appointment with Dr. Jane Roe", received.Summary)
	assert.Equal(t, "2026-09-15T09:00:00", received.Start.DateTime)
	assert.Equal(t, "2026-09-15T09:45:00", received.End.DateTime)
	assert.Equal(t, "Asia/Kolkata", received.Start.TimeZone)
	assert.Len(t, received.Attendees, 2)
}

func TestGoogleProvider_CreateEventRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(testConfig("", "", server.URL))

	link, err := provider.CreateEvent(context.Background(), "expired-token", &Event{
		Summary:   "Appointment with Dr. Jane Roe",
		Date:      "2026-09-15",
		StartTime: "09:00",
		EndTime:   "09:45",
		TimeZone:  "Asia/Kolkata",
	})

	assert.Error(t, err)
	assert.Empty(t, link)
	assert.Contains(t, err.Error(), "status 401")
}
