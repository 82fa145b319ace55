package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftdrip/internal/providers"
	"giftdrip/internal/push"
	"giftdrip/internal/schedule"
	"giftdrip/internal/store"
)

// Summary accumulates per-subscription outcomes of one dispatch sweep.
type Summary struct {
	Attempted int `json:"attempted"`
	Sent      int `json:"sent"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Removed   int `json:"removed"`
}

type Runner interface {
	Run(ctx context.Context, now time.Time) (Summary, error)
}

const (
	outcomeSent    = "sent"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
	outcomeRemoved = "removed"
)

const notificationBody = "A new note is waiting for you."

// Cycle runs one push dispatch sweep over all enabled subscriptions.
// It holds no state between runs; the external trigger (a cron hitting
// the dispatch endpoint, typically once per minute, non-overlapping)
// provides the cadence. Each subscription's read-evaluate-write is
// independent, so an aborted sweep leaves a consistent partial result
// and the date-key guard prevents same-day resends.
type Cycle struct {
	repo    store.Repository
	sender  push.Sender
	due     *schedule.DueEvaluator
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewCycle(repo store.Repository, sender push.Sender, due *schedule.DueEvaluator, logger providers.Logger, metrics providers.MetricsProviderInterface) Runner {
	return &Cycle{
		repo:    repo,
		sender:  sender,
		due:     due,
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Cycle) Run(ctx context.Context, now time.Time) (Summary, error) {
	started := time.Now()
	var summary Summary

	subs, err := c.repo.ListEnabledSubscriptions(ctx)
	if err != nil {
		return summary, fmt.Errorf("list subscriptions: %w", err)
	}
	c.logger.Debugf(providers.TypeDispatch, "Dispatch cycle started: %d enabled subscriptions", len(subs))

	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			c.logger.Warnf(providers.TypeDispatch, "Dispatch cycle aborted after %d subscriptions: %s", summary.Attempted, err)
			return summary, err
		}

		summary.Attempted++
		outcome := c.process(ctx, now, sub)
		c.metrics.IncDispatchOutcome(outcome)
		switch outcome {
		case outcomeSent:
			summary.Sent++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		case outcomeRemoved:
			summary.Removed++
		}
	}

	c.metrics.ObserveDispatchDuration(time.Since(started))
	c.metrics.SetDispatchLastRun(now)
	c.logger.Infof(providers.TypeDispatch,
		"Dispatch cycle finished: attempted=%d sent=%d skipped=%d failed=%d removed=%d",
		summary.Attempted, summary.Sent, summary.Skipped, summary.Failed, summary.Removed)
	return summary, nil
}

func (c *Cycle) process(ctx context.Context, now time.Time, sub store.PushSubscription) string {
	gift, err := c.repo.GetGiftByID(ctx, sub.GiftID)
	if errors.Is(err, store.ErrNotFound) {
		c.logger.Warnf(providers.TypeDispatch, "Subscription %s references missing gift %s, skipping", sub.ID, sub.GiftID)
		return outcomeSkipped
	}
	if err != nil {
		c.logger.Errorf(providers.TypeDispatch, "Failed to load gift %s: %s", sub.GiftID, err)
		return outcomeFailed
	}

	due := c.due.Resolve(now, sub.Timezone, sub.NotifyHour, sub.NotifyMinute, sub.LastNotifiedOn)
	if !due.Due {
		return outcomeSkipped
	}

	result := c.sender.Send(ctx, push.Subscription{
		Endpoint: sub.Endpoint,
		P256dh:   sub.P256dh,
		Auth:     sub.Auth,
	}, push.Payload{
		Title: gift.Title,
		Body:  notificationBody,
		URL:   "/gift/" + gift.Slug,
	})

	switch {
	case result.OK:
		if err := c.repo.MarkNotified(ctx, sub.ID, due.LocalDate, now); err != nil {
			// The notification went out; the missing date key only
			// risks a duplicate on the next cycle.
			c.logger.Errorf(providers.TypeDispatch, "Sent to %s but failed to mark notified: %s", sub.ID, err)
		}
		c.logger.Infof(providers.TypeDispatch, "Notified subscription %s for %s", sub.ID, due.LocalDate)
		return outcomeSent

	case result.PermanentFailure:
		if err := c.repo.DeleteSubscription(ctx, sub.ID); err != nil {
			c.logger.Errorf(providers.TypeDispatch, "Failed to remove gone subscription %s: %s", sub.ID, err)
			return outcomeFailed
		}
		c.logger.Infof(providers.TypeDispatch, "Removed gone subscription %s (status %d)", sub.ID, result.StatusCode)
		return outcomeRemoved

	default:
		c.logger.Warnf(providers.TypeDispatch, "Transient delivery failure for %s (status %d): %s", sub.ID, result.StatusCode, result.Reason)
		return outcomeFailed
	}
}
