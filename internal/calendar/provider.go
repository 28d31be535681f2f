package calendar

import (
	"context"
	"time"
)

// ScopeCalendar is the write scope requested during consent.
const ScopeCalendar = "https://www.googleapis.com/auth/calendar"

// Token is an access credential usable against the provider's event API.
// RefreshToken is stored when the provider returns one but no refresh grant is
// performed; re-consent is the remediation for an expired credential.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Event describes a calendar entry to mirror an appointment. Times are wall
// clock in the given zone, never the client's local zone.
type Event struct {
	Summary        string
	Location       string
	Description    string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM
	EndTime        string // HH:MM
	TimeZone       string
	AttendeeEmails []string
}

// Provider abstracts the external calendar capability: consent URL issuance,
// authorization code exchange, and event creation. Implementations translate
// transport failures into plain errors; classification into the domain error
// taxonomy happens in the services that call them.
type Provider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Token, error)
	CreateEvent(ctx context.Context, accessToken string, event *Event) (link string, err error)
}
