package store

import (
	"errors"
	"fmt"
	"time"
)

// Gift is one gift configuration row.
type Gift struct {
	ID         string
	Slug       string
	StartDate  string // YYYY-MM-DD
	UnlockHour int
	Title      string
}

// Note is one daily note belonging to a gift.
type Note struct {
	ID       string
	GiftID   string
	DayIndex int
	Body     string
	ImageURL *string
}

// PushSubscription is one web-push subscription row. LastNotifiedOn is
// a YYYY-MM-DD date key in the subscription's own timezone; empty means
// the subscription has never been notified.
type PushSubscription struct {
	ID             string
	GiftID         string
	Endpoint       string
	P256dh         string
	Auth           string
	Timezone       string
	NotifyHour     int
	NotifyMinute   int
	Enabled        bool
	LastNotifiedOn string
	LastNotifiedAt *time.Time
}

// Validate rejects rows the scheduling core must never see. Storage
// backends call it when reading, so a malformed row is filtered at the
// boundary instead of crashing a dispatch cycle.
func (s *PushSubscription) Validate() error {
	if s.ID == "" {
		return errors.New("subscription id is empty")
	}
	if s.GiftID == "" {
		return errors.New("subscription gift id is empty")
	}
	if s.Endpoint == "" {
		return errors.New("subscription endpoint is empty")
	}
	if s.P256dh == "" || s.Auth == "" {
		return errors.New("subscription encryption keys are empty")
	}
	if s.NotifyHour < 0 || s.NotifyHour > 23 {
		return fmt.Errorf("notify hour %d out of range", s.NotifyHour)
	}
	if s.NotifyMinute < 0 || s.NotifyMinute > 59 {
		return fmt.Errorf("notify minute %d out of range", s.NotifyMinute)
	}
	return nil
}

// Event is an audit record of something that happened to a gift.
// GiftID is nil when the event references an unknown slug.
type Event struct {
	GiftID    *string
	EventType string
	Payload   []byte
}
