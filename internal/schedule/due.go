package schedule

import "time"

// DueResult reports whether a notification is due at a specific
// instant, together with the local time parts the decision was made
// from. LocalDate is the idempotency key for "already notified today".
type DueResult struct {
	Due         bool
	LocalDate   string
	LocalHour   int
	LocalMinute int
	Timezone    string
}

// DueEvaluator decides whether a subscription's notification minute
// has arrived in its own timezone.
type DueEvaluator struct {
	tz *TimezoneResolver
}

func NewDueEvaluator(tz *TimezoneResolver) *DueEvaluator {
	return &DueEvaluator{tz: tz}
}

// Resolve is due exactly when the local wall clock reads hour:minute
// and lastNotifiedOn is not today's local date. The window is a single
// minute wide; the caller's invocation cadence decides whether it is
// observed. lastNotifiedOn is a "YYYY-MM-DD" key, empty when the
// subscription has never been notified.
func (e *DueEvaluator) Resolve(now time.Time, timezone string, hour, minute int, lastNotifiedOn string) DueResult {
	normalized := e.tz.Normalize(timezone)
	local := now.In(e.tz.Location(normalized))
	localDate := local.Format(dateOnlyFormat)

	due := local.Hour() == hour &&
		local.Minute() == minute &&
		lastNotifiedOn != localDate

	return DueResult{
		Due:         due,
		LocalDate:   localDate,
		LocalHour:   local.Hour(),
		LocalMinute: local.Minute(),
		Timezone:    normalized,
	}
}
