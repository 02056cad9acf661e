package repository

import (
	"photoblog-backend/internal/subscription/domain"
)

// SubscriberRepository abstracts the set of subscriber records. Two
// implementations exist: a postgres table and a Resend audience. Callers
// depend only on this interface.
type SubscriberRepository interface {
	// Create inserts a new subscriber. Returns domain.ErrDuplicateSubscriber
	// when a record (active or not) already exists for the canonical email.
	Create(sub *domain.Subscriber) error
	// Update persists mutations to an existing subscriber (name fields,
	// active flag). Used by the reactivation path.
	Update(sub *domain.Subscriber) error
	// FindByEmail matches the canonical email. Returns (nil, nil) when absent.
	FindByEmail(email string) (*domain.Subscriber, error)
	// FindByToken matches the unsubscribe token. Returns (nil, nil) when absent.
	FindByToken(token string) (*domain.Subscriber, error)
	// SetActive flips the active flag. Setting the current value is a no-op
	// success.
	SetActive(id string, active bool) error
	// Remove hard-deletes the record; later lookups return not found.
	Remove(id string) error
	// List returns subscribers newest first, optionally active only.
	List(activeOnly bool) ([]*domain.Subscriber, error)
	// Stats counts all records and the active subset.
	Stats() (domain.Stats, error)
}
