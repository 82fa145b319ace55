package schedule

import (
	"sync"
	"time"
)

const FallbackTimezone = "UTC"

// TimezoneResolver validates IANA timezone identifiers and hands out
// *time.Location values. Lookups that fail degrade to UTC, never to an
// error. Loaded locations are cached per identifier; the cache is
// read-mostly and safe for concurrent use.
type TimezoneResolver struct {
	mu        sync.RWMutex
	locations map[string]*time.Location
}

func NewTimezoneResolver() *TimezoneResolver {
	return &TimezoneResolver{
		locations: make(map[string]*time.Location),
	}
}

// Normalize returns tz unchanged when it names a loadable timezone and
// "UTC" otherwise (including the empty string).
func (r *TimezoneResolver) Normalize(tz string) string {
	if tz == "" {
		return FallbackTimezone
	}
	if _, ok := r.load(tz); !ok {
		return FallbackTimezone
	}
	return tz
}

// Location resolves tz to a usable *time.Location, falling back to UTC
// for empty or invalid identifiers.
func (r *TimezoneResolver) Location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, ok := r.load(tz)
	if !ok {
		return time.UTC
	}
	return loc
}

func (r *TimezoneResolver) load(tz string) (*time.Location, bool) {
	r.mu.RLock()
	loc, ok := r.locations[tz]
	r.mu.RUnlock()
	if ok {
		return loc, true
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}

	r.mu.Lock()
	r.locations[tz] = loc
	r.mu.Unlock()
	return loc, true
}
