package domain

import (
	"errors"
	"time"
)

// Subscriber is one opted-in recipient of new-post notifications. Email is
// stored canonical (lower-cased, trimmed) and is unique across the table.
type Subscriber struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Email            string    `json:"email" gorm:"uniqueIndex;not null"`
	FirstName        string    `json:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
	UnsubscribeToken string    `json:"-" gorm:"uniqueIndex;not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Subscriber) TableName() string {
	return "email_subscribers"
}

// DisplayName joins the optional name parts for admin views.
func (s *Subscriber) DisplayName() string {
	switch {
	case s.FirstName != "" && s.LastName != "":
		return s.FirstName + " " + s.LastName
	case s.FirstName != "":
		return s.FirstName
	default:
		return s.LastName
	}
}

// Stats summarizes the subscriber table for the admin dashboard.
type Stats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// PostRef carries just enough of a post to render a notification.
type PostRef struct {
	ID      string
	Title   string
	Excerpt string
}

// DispatchResult is the outcome of one notification run. A non-empty Errors
// list with SentCount > 0 is a valid partial success.
type DispatchResult struct {
	Success   bool     `json:"success"`
	SentCount int      `json:"sent_count"`
	Errors    []string `json:"errors,omitempty"`
}

var (
	// ErrDuplicateSubscriber reports an active record already exists for the email.
	ErrDuplicateSubscriber = errors.New("subscriber already exists")
	// ErrSubscriberNotFound reports no record matched the email, token, or id.
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrStoreUnavailable wraps transport or storage failures; callers must not
	// read it as "not found".
	ErrStoreUnavailable = errors.New("subscriber store unavailable")
	// ErrNotConfigured reports the backing provider has no API key or audience.
	ErrNotConfigured = errors.New("subscriber store not configured")
)
