package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"medibook/internal/config"
)

// GoogleProvider implements Provider against a Google-style OAuth2 endpoint and
// events API. Endpoint URLs come from configuration so tests and alternative
// deployments can point it elsewhere.
type GoogleProvider struct {
	oauth     *oauth2.Config
	eventsURL string
	client    *http.Client
}

// NewGoogleProvider builds a provider from configuration. All outbound calls
// are bounded by the configured timeout.
func NewGoogleProvider(cfg *config.Config) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.CalendarClientID,
			ClientSecret: cfg.CalendarClientSecret,
			RedirectURL:  cfg.CalendarRedirectURL,
			Scopes:       []string{ScopeCalendar},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.CalendarAuthURL,
				TokenURL: cfg.CalendarTokenURL,
			},
		},
		eventsURL: cfg.CalendarEventsURL,
		client:    &http.Client{Timeout: cfg.CalendarTimeout},
	}
}

// AuthCodeURL returns the consent URL bound to the pre-registered callback.
// Offline access with a forced consent prompt matches the original flow and is
// what makes the provider hand back a refresh token.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for an access credential.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Token, error) {
	ctx, cancel := context.WithTimeout(ctx, p.client.Timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}, nil
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type eventAttendee struct {
	Email string `json:"email"`
}

type eventRequest struct {
	Summary     string          `json:"summary"`
	Location    string          `json:"location,omitempty"`
	Description string          `json:"description,omitempty"`
	Start       eventTime       `json:"start"`
	End         eventTime       `json:"end"`
	Attendees   []eventAttendee `json:"attendees"`
}

type eventResponse struct {
	HTMLLink string `json:"htmlLink"`
}

// CreateEvent inserts the event into the primary calendar of the credential's
// owner and returns the event link.
func (p *GoogleProvider) CreateEvent(ctx context.Context, accessToken string, event *Event) (string, error) {
	attendees := make([]eventAttendee, 0, len(event.AttendeeEmails))
	for _, email := range event.AttendeeEmails {
		attendees = append(attendees, eventAttendee{Email: email})
	}

	payload := eventRequest{
		Summary:     event.Summary,
		Location:    event.Location,
		Description: event.Description,
		Start:       eventTime{DateTime: fmt.Sprintf("%sT%s:00", event.Date, event.StartTime), TimeZone: event.TimeZone},
		End:         eventTime{DateTime: fmt.Sprintf("%sT%s:00", event.Date, event.EndTime), TimeZone: event.TimeZone},
		Attendees:   attendees,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.client.Timeout)
	defer cancel()

	url := p.eventsURL + "/calendars/primary/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create event request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send event request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("provider rejected event: status %d: %s", resp.StatusCode, snippet)
	}

	var created eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode event response: %w", err)
	}
	return created.HTMLLink, nil
}

var _ Provider = (*GoogleProvider)(nil)
