package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"photoblog-backend/internal/subscription/domain"
	"photoblog-backend/internal/subscription/repository"
	"photoblog-backend/pkg/logger"
)

// User-facing messages. Kept generic for store failures so backend detail
// never leaks to visitors.
const (
	MsgInvalidEmail      = "Please enter a valid email address."
	MsgAlreadySubscribed = "This email is already subscribed to our newsletter."
	MsgSubscribeFailed   = "Failed to subscribe. Please try again later."
	MsgSubscribed        = "Successfully subscribed! You'll receive notifications when new posts are published."
	MsgNotFound          = "Email address not found in our subscriber list."
	MsgUnsubscribed      = "Successfully unsubscribed from our newsletter."
	MsgAlreadyGone       = "You have already been unsubscribed from our mailing list."
	MsgUnsubscribeFailed = "Failed to unsubscribe. Please try again later."
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// subscriptionUsecase implements SubscriptionUsecase
type subscriptionUsecase struct {
	repo       repository.SubscriberRepository
	dispatcher Dispatcher
	logger     logger.Logger
}

// NewSubscriptionUsecase creates a new instance of subscriptionUsecase
func NewSubscriptionUsecase(repo repository.SubscriberRepository, dispatcher Dispatcher, log logger.Logger) SubscriptionUsecase {
	return &subscriptionUsecase{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Subscribe validates the address, then creates the subscriber. An existing
// inactive record is reactivated with refreshed name fields; an active one is
// reported as already subscribed.
func (u *subscriptionUsecase) Subscribe(email, firstName, lastName string) Result {
	email = canonicalEmail(email)
	if !isValidEmail(email) {
		return Result{Success: false, Message: MsgInvalidEmail}
	}

	existing, err := u.repo.FindByEmail(email)
	if err != nil {
		u.logger.Error("subscribe lookup failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return Result{Success: false, Message: MsgSubscribeFailed}
	}

	if existing != nil {
		if existing.IsActive {
			return Result{Success: false, Message: MsgAlreadySubscribed}
		}
		// Reactivate the unsubscribed record instead of blocking it as a
		// duplicate; name fields follow the new submission.
		existing.FirstName = firstName
		existing.LastName = lastName
		existing.IsActive = true
		if err := u.repo.Update(existing); err != nil {
			u.logger.Error("reactivation failed", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
			return Result{Success: false, Message: MsgSubscribeFailed}
		}
		u.logger.Info("subscriber reactivated", map[string]interface{}{"email": email})
		return Result{Success: true, Message: MsgSubscribed}
	}

	sub := &domain.Subscriber{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
	}
	if err := u.repo.Create(sub); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubscriber) {
			return Result{Success: false, Message: MsgAlreadySubscribed}
		}
		u.logger.Error("subscribe failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return Result{Success: false, Message: MsgSubscribeFailed}
	}

	u.logger.Info("subscriber created", map[string]interface{}{"email": email})
	return Result{Success: true, Message: MsgSubscribed}
}

func (u *subscriptionUsecase) UnsubscribeByEmail(email string) Result {
	email = canonicalEmail(email)
	if !isValidEmail(email) {
		return Result{Success: false, Message: MsgInvalidEmail}
	}

	sub, err := u.repo.FindByEmail(email)
	if err != nil {
		u.logger.Error("unsubscribe lookup failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return Result{Success: false, Message: MsgUnsubscribeFailed}
	}
	return u.deactivate(sub)
}

func (u *subscriptionUsecase) UnsubscribeByToken(token string) Result {
	if token == "" {
		return Result{Success: false, Message: MsgNotFound}
	}

	sub, err := u.repo.FindByToken(token)
	if err != nil {
		u.logger.Error("unsubscribe token lookup failed", map[string]interface{}{
			"error": err.Error(),
		})
		return Result{Success: false, Message: MsgUnsubscribeFailed}
	}
	return u.deactivate(sub)
}

// deactivate flips the subscriber inactive. Already-inactive records resolve
// to the same terminal state so unsubscribe links stay idempotent.
func (u *subscriptionUsecase) deactivate(sub *domain.Subscriber) Result {
	if sub == nil {
		return Result{Success: false, Message: MsgNotFound}
	}
	if !sub.IsActive {
		return Result{Success: true, Message: MsgAlreadyGone}
	}

	if err := u.repo.SetActive(sub.ID, false); err != nil {
		u.logger.Error("deactivation failed", map[string]interface{}{
			"email": sub.Email,
			"error": err.Error(),
		})
		return Result{Success: false, Message: MsgUnsubscribeFailed}
	}

	u.logger.Info("subscriber unsubscribed", map[string]interface{}{"email": sub.Email})
	return Result{Success: true, Message: MsgUnsubscribed}
}

// Stats is informational; failures fall back to zero values.
func (u *subscriptionUsecase) Stats() domain.Stats {
	stats, err := u.repo.Stats()
	if err != nil {
		u.logger.Warn("failed to load subscriber stats", map[string]interface{}{
			"error": err.Error(),
		})
		return domain.Stats{}
	}
	return stats
}

func (u *subscriptionUsecase) ListSubscribers(activeOnly bool) ([]SubscriberView, error) {
	subs, err := u.repo.List(activeOnly)
	if err != nil {
		return nil, err
	}

	views := make([]SubscriberView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, SubscriberView{
			ID:           sub.ID,
			Email:        sub.Email,
			FirstName:    sub.FirstName,
			LastName:     sub.LastName,
			DisplayName:  sub.DisplayName(),
			IsActive:     sub.IsActive,
			SubscribedAt: sub.CreatedAt,
		})
	}
	return views, nil
}

// ExportCSV renders the active subscribers as CSV. Inactive records are
// excluded; the status column exists for parity with the admin table view.
func (u *subscriptionUsecase) ExportCSV() (string, error) {
	subs, err := u.repo.List(true)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Email,First Name,Last Name,Subscribed Date,Status\n")
	for _, sub := range subs {
		b.WriteString(strings.Join([]string{
			sub.Email,
			sub.FirstName,
			sub.LastName,
			sub.CreatedAt.Format("01/02/2006"),
			"Active",
		}, ","))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (u *subscriptionUsecase) RemoveSubscriber(id string) error {
	return u.repo.Remove(id)
}

// NotifyOfNewPost is best-effort: the caller logs the result and proceeds
// regardless, so a dispatch failure never affects the committed post.
func (u *subscriptionUsecase) NotifyOfNewPost(ctx context.Context, post domain.PostRef) domain.DispatchResult {
	result := u.dispatcher.Dispatch(ctx, post)
	if !result.Success {
		u.logger.Warn("post notification incomplete", map[string]interface{}{
			"post_id":    post.ID,
			"sent_count": result.SentCount,
			"errors":     result.Errors,
		})
	}
	return result
}

func canonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
