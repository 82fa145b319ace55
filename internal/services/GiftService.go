package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"giftdrip/internal/schedule"
	"giftdrip/internal/store"
	"giftdrip/internal/structures"
)

// NoteView is a note as served to clients, with today's note flagged.
type NoteView struct {
	ID       string  `json:"id"`
	DayIndex int     `json:"dayIndex"`
	Body     string  `json:"body"`
	ImageURL *string `json:"imageUrl"`
	IsToday  bool    `json:"isToday"`
}

// GiftExperience bundles the unlock context with the notes unlocked at
// the evaluation instant, newest first.
type GiftExperience struct {
	Context schedule.UnlockContext `json:"context"`
	Notes   []NoteView             `json:"notes"`
}

type OpenedEvent struct {
	Slug     string `json:"slug"`
	Timezone string `json:"timezone"`
	DayIndex int    `json:"dayIndex"`
}

type SubscriptionRequest struct {
	Slug         string
	Timezone     string
	NotifyHour   int
	NotifyMinute int
	Endpoint     string
	P256dh       string
	Auth         string
}

type DatabaseHealth struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}

type GiftServiceInterface interface {
	GetExperience(ctx context.Context, slug, timezone string, now time.Time) (*GiftExperience, error)
	RecordOpened(ctx context.Context, event OpenedEvent) error
	UpsertSubscription(ctx context.Context, req SubscriptionRequest) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	DatabaseHealth(ctx context.Context) DatabaseHealth
}

type GiftService struct {
	conf *structures.Config
	repo store.Repository
	calc *schedule.UnlockCalculator
	tz   *schedule.TimezoneResolver
}

func NewGiftService(conf *structures.Config, repo store.Repository, calc *schedule.UnlockCalculator, tz *schedule.TimezoneResolver) GiftServiceInterface {
	return &GiftService{
		conf: conf,
		repo: repo,
		calc: calc,
		tz:   tz,
	}
}

func (gs *GiftService) GetExperience(ctx context.Context, slug, timezone string, now time.Time) (*GiftExperience, error) {
	gift, err := gs.repo.GetGiftBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	unlockCtx, err := gs.calc.Calculate(schedule.UnlockInput{
		StartDate:  gift.StartDate,
		UnlockHour: gift.UnlockHour,
		TotalCount: gs.conf.Gift.TotalNotes,
		Timezone:   timezone,
		Now:        now,
	})
	if err != nil {
		return nil, fmt.Errorf("unlock context for %q: %w", slug, err)
	}

	notes, err := gs.repo.ListUnlockedNotes(ctx, gift.ID, unlockCtx.UnlockedCount)
	if err != nil {
		return nil, err
	}

	views := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, NoteView{
			ID:       n.ID,
			DayIndex: n.DayIndex,
			Body:     n.Body,
			ImageURL: n.ImageURL,
			IsToday:  unlockCtx.UnlockedCount > 0 && n.DayIndex == unlockCtx.DayIndex,
		})
	}

	return &GiftExperience{
		Context: unlockCtx,
		Notes:   views,
	}, nil
}

func (gs *GiftService) RecordOpened(ctx context.Context, event OpenedEvent) error {
	var giftID *string
	gift, err := gs.repo.GetGiftBySlug(ctx, event.Slug)
	if err == nil {
		giftID = &gift.ID
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal opened event: %w", err)
	}

	return gs.repo.InsertEvent(ctx, store.Event{
		GiftID:    giftID,
		EventType: "opened",
		Payload:   payload,
	})
}

func (gs *GiftService) UpsertSubscription(ctx context.Context, req SubscriptionRequest) error {
	gift, err := gs.repo.GetGiftBySlug(ctx, req.Slug)
	if err != nil {
		return err
	}

	return gs.repo.UpsertSubscription(ctx, store.PushSubscription{
		GiftID:       gift.ID,
		Endpoint:     req.Endpoint,
		P256dh:       req.P256dh,
		Auth:         req.Auth,
		Timezone:     gs.tz.Normalize(req.Timezone),
		NotifyHour:   req.NotifyHour,
		NotifyMinute: req.NotifyMinute,
		Enabled:      true,
	})
}

func (gs *GiftService) DeleteSubscription(ctx context.Context, endpoint string) error {
	return gs.repo.DeleteSubscriptionByEndpoint(ctx, endpoint)
}

func (gs *GiftService) DatabaseHealth(ctx context.Context) DatabaseHealth {
	if err := gs.repo.Ping(ctx); err != nil {
		return DatabaseHealth{OK: false, Reason: err.Error()}
	}
	return DatabaseHealth{OK: true, Reason: "Connected"}
}
