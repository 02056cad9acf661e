package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"photoblog-backend/internal/subscription/domain"
	"photoblog-backend/pkg/resend"
)

// resendSubscriberRepository keeps subscribers as contacts in a Resend
// audience. The provider-assigned contact id doubles as the unsubscribe
// token, and the provider's unsubscribed flag is the inverse of IsActive.
type resendSubscriberRepository struct {
	client     *resend.Client
	audienceID string
	timeout    time.Duration
}

// NewResendSubscriberRepository creates an audience-backed subscriber
// repository. A nil client or empty audience id yields domain.ErrNotConfigured
// on every call instead of failing at startup.
func NewResendSubscriberRepository(client *resend.Client, audienceID string) SubscriberRepository {
	return &resendSubscriberRepository{
		client:     client,
		audienceID: audienceID,
		timeout:    15 * time.Second,
	}
}

func (r *resendSubscriberRepository) configured() error {
	if r.client == nil || r.audienceID == "" {
		return domain.ErrNotConfigured
	}
	return nil
}

func (r *resendSubscriberRepository) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *resendSubscriberRepository) Create(sub *domain.Subscriber) error {
	if err := r.configured(); err != nil {
		return err
	}
	ctx, cancel := r.ctx()
	defer cancel()

	sub.Email = canonicalEmail(sub.Email)
	id, err := r.client.CreateContact(ctx, r.audienceID, resend.ContactParams{
		Email:        sub.Email,
		FirstName:    sub.FirstName,
		LastName:     sub.LastName,
		Unsubscribed: false,
	})
	if err != nil {
		if errors.Is(err, resend.ErrDuplicate) {
			return domain.ErrDuplicateSubscriber
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	sub.ID = id
	sub.UnsubscribeToken = id
	sub.IsActive = true
	sub.CreatedAt = time.Now()
	return nil
}

func (r *resendSubscriberRepository) Update(sub *domain.Subscriber) error {
	// The contacts API only mutates the unsubscribed flag; name fields are
	// fixed at creation on this backend.
	return r.SetActive(sub.ID, sub.IsActive)
}

func (r *resendSubscriberRepository) FindByEmail(email string) (*domain.Subscriber, error) {
	subs, err := r.List(false)
	if err != nil {
		return nil, err
	}
	email = canonicalEmail(email)
	for _, sub := range subs {
		if sub.Email == email {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *resendSubscriberRepository) FindByToken(token string) (*domain.Subscriber, error) {
	subs, err := r.List(false)
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.UnsubscribeToken == token {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *resendSubscriberRepository) SetActive(id string, active bool) error {
	if err := r.configured(); err != nil {
		return err
	}
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.client.UpdateContact(ctx, r.audienceID, id, !active); err != nil {
		if errors.Is(err, resend.ErrNotFound) {
			return domain.ErrSubscriberNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *resendSubscriberRepository) Remove(id string) error {
	if err := r.configured(); err != nil {
		return err
	}
	ctx, cancel := r.ctx()
	defer cancel()

	if err := r.client.RemoveContact(ctx, r.audienceID, id); err != nil {
		if errors.Is(err, resend.ErrNotFound) {
			return domain.ErrSubscriberNotFound
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *resendSubscriberRepository) List(activeOnly bool) ([]*domain.Subscriber, error) {
	if err := r.configured(); err != nil {
		return nil, err
	}
	ctx, cancel := r.ctx()
	defer cancel()

	contacts, err := r.client.ListContacts(ctx, r.audienceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	subs := make([]*domain.Subscriber, 0, len(contacts))
	for _, c := range contacts {
		if activeOnly && c.Unsubscribed {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339, c.CreatedAt)
		subs = append(subs, &domain.Subscriber{
			ID:               c.ID,
			Email:            canonicalEmail(c.Email),
			FirstName:        c.FirstName,
			LastName:         c.LastName,
			IsActive:         !c.Unsubscribed,
			UnsubscribeToken: c.ID,
			CreatedAt:        createdAt,
		})
	}

	// Newest first for admin display.
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (r *resendSubscriberRepository) Stats() (domain.Stats, error) {
	subs, err := r.List(false)
	if err != nil {
		return domain.Stats{}, err
	}
	stats := domain.Stats{Total: int64(len(subs))}
	for _, sub := range subs {
		if sub.IsActive {
			stats.Active++
		}
	}
	return stats, nil
}
