package store

import (
	"context"
	"errors"
	"time"

	"giftdrip/internal/providers"
	"giftdrip/internal/structures"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrNotConfigured marks operations running against the in-memory
	// fallback because no database URL was configured.
	ErrNotConfigured = errors.New("database is not configured")
)

// Repository is the storage boundary of the scheduling engine. All
// implementations return only validated rows.
type Repository interface {
	GetGiftBySlug(ctx context.Context, slug string) (*Gift, error)
	GetGiftByID(ctx context.Context, id string) (*Gift, error)
	ListUnlockedNotes(ctx context.Context, giftID string, maxDay int) ([]Note, error)
	ListEnabledSubscriptions(ctx context.Context) ([]PushSubscription, error)
	UpsertSubscription(ctx context.Context, sub PushSubscription) error
	DeleteSubscription(ctx context.Context, id string) error
	DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error
	MarkNotified(ctx context.Context, subscriptionID, localDate string, at time.Time) error
	InsertEvent(ctx context.Context, event Event) error
	Ping(ctx context.Context) error
	Close() error
}

// NewRepository picks the storage backend from config. Without a
// database URL the service still runs, against a memory store seeded
// from the configured gift, and reports itself degraded.
func NewRepository(conf *structures.Config, logger providers.Logger) (Repository, error) {
	if conf.Database.URL == "" {
		logger.Warnf(providers.TypeStore, "No database URL configured, using in-memory fallback store")
		return NewMemoryRepository(conf), nil
	}
	return NewPostgresRepository(conf, logger)
}
