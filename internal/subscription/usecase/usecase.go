package usecase

import (
	"context"
	"time"

	"photoblog-backend/internal/subscription/domain"
)

// Result is the user-facing outcome of a subscribe/unsubscribe call. Message
// is safe to show directly; backend detail stays in the logs.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubscriberView is the admin-facing projection of a subscriber.
type SubscriberView struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	DisplayName  string    `json:"display_name"`
	IsActive     bool      `json:"is_active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// Dispatcher runs one notification job against the active-subscriber
// snapshot.
type Dispatcher interface {
	Dispatch(ctx context.Context, post domain.PostRef) domain.DispatchResult
}

// SubscriptionUsecase orchestrates validation, the contact store, and the
// dispatcher behind one API consumed by the HTTP layer.
type SubscriptionUsecase interface {
	Subscribe(email, firstName, lastName string) Result
	UnsubscribeByEmail(email string) Result
	UnsubscribeByToken(token string) Result
	Stats() domain.Stats
	ListSubscribers(activeOnly bool) ([]SubscriberView, error)
	ExportCSV() (string, error)
	RemoveSubscriber(id string) error
	NotifyOfNewPost(ctx context.Context, post domain.PostRef) domain.DispatchResult
}
