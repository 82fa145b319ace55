package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"giftdrip/internal/structures"
)

// MemoryRepository is the fallback backend used when no database is
// configured. It serves the configured gift with placeholder notes so
// the rest of the service keeps working, and reports ErrNotConfigured
// from Ping so health checks show the degraded state.
type MemoryRepository struct {
	mu     sync.RWMutex
	gift   Gift
	notes  []Note
	subs   map[string]PushSubscription // keyed by endpoint
	events []Event
}

func NewMemoryRepository(conf *structures.Config) *MemoryRepository {
	gift := Gift{
		ID:         uuid.NewString(),
		Slug:       conf.Gift.Slug,
		StartDate:  conf.Gift.StartDate,
		UnlockHour: conf.Gift.UnlockHour,
		Title:      conf.Gift.Title,
	}

	notes := make([]Note, 0, conf.Gift.TotalNotes)
	for day := 1; day <= conf.Gift.TotalNotes; day++ {
		notes = append(notes, Note{
			ID:       uuid.NewString(),
			GiftID:   gift.ID,
			DayIndex: day,
			Body:     fmt.Sprintf("Note #%d will appear here once the database is connected.", day),
		})
	}

	return &MemoryRepository{
		gift:  gift,
		notes: notes,
		subs:  make(map[string]PushSubscription),
	}
}

func (r *MemoryRepository) GetGiftBySlug(_ context.Context, slug string) (*Gift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if slug != r.gift.Slug {
		return nil, ErrNotFound
	}
	g := r.gift
	return &g, nil
}

func (r *MemoryRepository) GetGiftByID(_ context.Context, id string) (*Gift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id != r.gift.ID {
		return nil, ErrNotFound
	}
	g := r.gift
	return &g, nil
}

func (r *MemoryRepository) ListUnlockedNotes(_ context.Context, giftID string, maxDay int) ([]Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var notes []Note
	for i := len(r.notes) - 1; i >= 0; i-- {
		n := r.notes[i]
		if n.GiftID == giftID && n.DayIndex <= maxDay {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (r *MemoryRepository) ListEnabledSubscriptions(_ context.Context) ([]PushSubscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var subs []PushSubscription
	for _, s := range r.subs {
		if s.Enabled && s.Validate() == nil {
			subs = append(subs, s)
		}
	}
	return subs, nil
}

func (r *MemoryRepository) UpsertSubscription(_ context.Context, sub PushSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.subs[sub.Endpoint]; ok {
		sub.ID = existing.ID
		sub.LastNotifiedOn = existing.LastNotifiedOn
		sub.LastNotifiedAt = existing.LastNotifiedAt
	} else if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	sub.Enabled = true
	r.subs[sub.Endpoint] = sub
	return nil
}

func (r *MemoryRepository) DeleteSubscription(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for endpoint, s := range r.subs {
		if s.ID == id {
			delete(r.subs, endpoint)
			return nil
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteSubscriptionByEndpoint(_ context.Context, endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, endpoint)
	return nil
}

func (r *MemoryRepository) MarkNotified(_ context.Context, subscriptionID, localDate string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for endpoint, s := range r.subs {
		if s.ID == subscriptionID {
			s.LastNotifiedOn = localDate
			s.LastNotifiedAt = &at
			r.subs[endpoint] = s
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) InsertEvent(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *MemoryRepository) Ping(_ context.Context) error {
	return ErrNotConfigured
}

func (r *MemoryRepository) Close() error {
	return nil
}
