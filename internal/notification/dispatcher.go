// Package notification delivers new-post emails to the active subscriber
// snapshot, either as one provider broadcast or recipient by recipient in
// rate-limited batches.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"photoblog-backend/internal/subscription/domain"
	"photoblog-backend/internal/subscription/repository"
	"photoblog-backend/pkg/logger"
)

const (
	defaultBatchSize  = 10
	defaultBatchDelay = time.Second
)

// Transport sends rendered notification emails. pkg/resend satisfies it via
// the resendTransport adapter below.
type Transport interface {
	Send(ctx context.Context, to, subject, html string) error
	Broadcast(ctx context.Context, subject, html string) error
}

// Config controls rendering and pacing. BatchSize and BatchDelay fall back to
// 10 and 1s when zero; tests shrink the delay.
type Config struct {
	From       string
	BaseURL    string
	BatchSize  int
	BatchDelay time.Duration
	// Broadcast sends one audience-wide call instead of per-recipient emails.
	// SentCount then reflects the active-subscriber count at dispatch time,
	// not per-recipient receipts.
	Broadcast bool
}

type Dispatcher struct {
	repo      repository.SubscriberRepository
	transport Transport
	cfg       Config
	logger    logger.Logger
}

func NewDispatcher(repo repository.SubscriberRepository, transport Transport, cfg Config, log logger.Logger) *Dispatcher {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = defaultBatchDelay
	}
	return &Dispatcher{repo: repo, transport: transport, cfg: cfg, logger: log}
}

// Dispatch notifies the current active subscribers about the post. Individual
// recipient failures are recorded, not fatal; Success is true only when the
// error list is empty.
func (d *Dispatcher) Dispatch(ctx context.Context, post domain.PostRef) domain.DispatchResult {
	if d.transport == nil || d.cfg.From == "" {
		d.logger.Warn("email transport not configured, notifications disabled", map[string]interface{}{
			"post_id": post.ID,
		})
		return domain.DispatchResult{
			Success: false,
			Errors:  []string{"email notifications are not configured"},
		}
	}

	if d.cfg.Broadcast {
		return d.dispatchBroadcast(ctx, post)
	}
	return d.dispatchPerRecipient(ctx, post)
}

func (d *Dispatcher) dispatchBroadcast(ctx context.Context, post domain.PostRef) domain.DispatchResult {
	subject := "New Post: " + post.Title
	html, err := renderBroadcastBody(post, d.cfg.BaseURL)
	if err != nil {
		return domain.DispatchResult{Success: false, Errors: []string{err.Error()}}
	}

	if err := d.transport.Broadcast(ctx, subject, html); err != nil {
		d.logger.Error("broadcast send failed", map[string]interface{}{
			"post_id": post.ID,
			"error":   err.Error(),
		})
		return domain.DispatchResult{Success: false, Errors: []string{err.Error()}}
	}

	// The provider gives no per-recipient receipt for a broadcast, so the
	// sent count is a post-hoc read of the active-subscriber count.
	sent := 0
	if stats, err := d.repo.Stats(); err == nil {
		sent = int(stats.Active)
	}

	d.logger.Info("broadcast sent", map[string]interface{}{
		"post_id":    post.ID,
		"sent_count": sent,
	})
	return domain.DispatchResult{Success: true, SentCount: sent}
}

func (d *Dispatcher) dispatchPerRecipient(ctx context.Context, post domain.PostRef) domain.DispatchResult {
	subs, err := d.repo.List(true)
	if err != nil {
		d.logger.Error("failed to load subscriber snapshot", map[string]interface{}{
			"post_id": post.ID,
			"error":   err.Error(),
		})
		return domain.DispatchResult{Success: false, Errors: []string{err.Error()}}
	}
	if len(subs) == 0 {
		return domain.DispatchResult{Success: true}
	}

	subject := "New Post: " + post.Title
	var allErrors []string

	for start := 0; start < len(subs); start += d.cfg.BatchSize {
		end := start + d.cfg.BatchSize
		if end > len(subs) {
			end = len(subs)
		}
		batch := subs[start:end]
		batchErrs := make([]string, len(batch))

		var wg sync.WaitGroup
		for i, sub := range batch {
			wg.Add(1)
			go func(i int, sub *domain.Subscriber) {
				defer wg.Done()
				html, err := renderRecipientBody(post, d.cfg.BaseURL, sub.UnsubscribeToken)
				if err == nil {
					err = d.transport.Send(ctx, sub.Email, subject, html)
				}
				if err != nil {
					batchErrs[i] = fmt.Sprintf("%s: %v", sub.Email, err)
				}
			}(i, sub)
		}
		wg.Wait()

		for _, msg := range batchErrs {
			if msg != "" {
				allErrors = append(allErrors, msg)
			}
		}

		if end < len(subs) && d.cfg.BatchDelay > 0 {
			time.Sleep(d.cfg.BatchDelay)
		}
	}

	result := domain.DispatchResult{
		Success:   len(allErrors) == 0,
		SentCount: len(subs) - len(allErrors),
		Errors:    allErrors,
	}

	d.logger.Info("dispatch finished", map[string]interface{}{
		"post_id":    post.ID,
		"sent_count": result.SentCount,
		"failures":   len(allErrors),
	})
	return result
}
