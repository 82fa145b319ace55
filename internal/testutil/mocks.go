package testutil

import (
	"context"
	"sync"
	"time"

	"giftdrip/internal/providers"
	"giftdrip/internal/push"
	"giftdrip/internal/store"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockRepository implements store.Repository against in-struct data
// and records mutating calls.
type MockRepository struct {
	mu sync.Mutex

	Gifts         map[string]*store.Gift // by id
	GiftsBySlug   map[string]*store.Gift
	Subscriptions []store.PushSubscription
	Notes         []store.Note

	ListErr error
	PingErr error

	MarkNotifiedCalls []MarkNotifiedCall
	DeletedIDs        []string
	DeletedEndpoints  []string
	Upserts           []store.PushSubscription
	Events            []store.Event
}

type MarkNotifiedCall struct {
	SubscriptionID string
	LocalDate      string
	At             time.Time
}

func (m *MockRepository) GetGiftBySlug(_ context.Context, slug string) (*store.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.GiftsBySlug[slug]; ok {
		return g, nil
	}
	return nil, store.ErrNotFound
}

func (m *MockRepository) GetGiftByID(_ context.Context, id string) (*store.Gift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g, ok := m.Gifts[id]; ok {
		return g, nil
	}
	return nil, store.ErrNotFound
}

func (m *MockRepository) ListUnlockedNotes(_ context.Context, giftID string, maxDay int) ([]store.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var notes []store.Note
	for _, n := range m.Notes {
		if n.GiftID == giftID && n.DayIndex <= maxDay {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (m *MockRepository) ListEnabledSubscriptions(_ context.Context) ([]store.PushSubscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return append([]store.PushSubscription(nil), m.Subscriptions...), nil
}

func (m *MockRepository) UpsertSubscription(_ context.Context, sub store.PushSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upserts = append(m.Upserts, sub)
	return nil
}

func (m *MockRepository) DeleteSubscription(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletedIDs = append(m.DeletedIDs, id)
	return nil
}

func (m *MockRepository) DeleteSubscriptionByEndpoint(_ context.Context, endpoint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletedEndpoints = append(m.DeletedEndpoints, endpoint)
	return nil
}

func (m *MockRepository) MarkNotified(_ context.Context, subscriptionID, localDate string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkNotifiedCalls = append(m.MarkNotifiedCalls, MarkNotifiedCall{
		SubscriptionID: subscriptionID,
		LocalDate:      localDate,
		At:             at,
	})
	for i := range m.Subscriptions {
		if m.Subscriptions[i].ID == subscriptionID {
			m.Subscriptions[i].LastNotifiedOn = localDate
			t := at
			m.Subscriptions[i].LastNotifiedAt = &t
		}
	}
	return nil
}

func (m *MockRepository) InsertEvent(_ context.Context, event store.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockRepository) Ping(_ context.Context) error { return m.PingErr }
func (m *MockRepository) Close() error                 { return nil }

// MockSender implements push.Sender with an injectable result.
type MockSender struct {
	mu      sync.Mutex
	Result  push.Result
	SendFn  func(sub push.Subscription, payload push.Payload) push.Result
	IsSetup bool
	Calls   []SendCall
}

type SendCall struct {
	Subscription push.Subscription
	Payload      push.Payload
}

func (m *MockSender) Send(_ context.Context, sub push.Subscription, payload push.Payload) push.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, SendCall{Subscription: sub, Payload: payload})
	if m.SendFn != nil {
		return m.SendFn(sub, payload)
	}
	return m.Result
}

func (m *MockSender) Configured() bool { return m.IsSetup }

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// dispatch outcomes.
type MockMetrics struct {
	mu       sync.Mutex
	Outcomes map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}
func (m *MockMetrics) ObserveDispatchDuration(_ time.Duration)          {}
func (m *MockMetrics) SetDispatchLastRun(_ time.Time)                   {}

func (m *MockMetrics) IncDispatchOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Outcomes == nil {
		m.Outcomes = make(map[string]int)
	}
	m.Outcomes[outcome]++
}
