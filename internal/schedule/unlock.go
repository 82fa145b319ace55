package schedule

import (
	"fmt"
	"time"
)

const dateOnlyFormat = "2006-01-02"

// UnlockContext describes which daily items are available at a given
// instant. It is recomputed on every call and never stored.
type UnlockContext struct {
	DayIndex      int    `json:"dayIndex"`
	UnlockedCount int    `json:"unlockedCount"`
	TotalCount    int    `json:"totalCount"`
	IsComplete    bool   `json:"isComplete"`
	UnlockHour    int    `json:"unlockHour"`
	StartDate     string `json:"startDate"`
	Timezone      string `json:"timezone"`
}

type UnlockInput struct {
	StartDate  string
	UnlockHour int
	TotalCount int
	Timezone   string
	Now        time.Time
}

// UnlockCalculator turns wall-clock time in an arbitrary timezone into
// a deterministic "which day is unlocked" decision.
type UnlockCalculator struct {
	tz *TimezoneResolver
}

func NewUnlockCalculator(tz *TimezoneResolver) *UnlockCalculator {
	return &UnlockCalculator{tz: tz}
}

// Calculate computes the unlock context for in.Now. A new item unlocks
// each local calendar day at in.UnlockHour. Day arithmetic works on
// epoch days of the local calendar date, so DST shifts cannot skip or
// repeat an unlock. A malformed start date is a caller bug and fails
// with a parse error rather than being coerced.
func (c *UnlockCalculator) Calculate(in UnlockInput) (UnlockContext, error) {
	start, err := time.Parse(dateOnlyFormat, in.StartDate)
	if err != nil {
		return UnlockContext{}, fmt.Errorf("invalid start date %q: %w", in.StartDate, err)
	}

	timezone := c.tz.Normalize(in.Timezone)
	local := in.Now.In(c.tz.Location(timezone))

	daysSinceStart := epochDay(local.Date()) - epochDay(start.Date())
	adjustment := 0
	if local.Hour() < in.UnlockHour {
		adjustment = 1
	}
	rawDayIndex := daysSinceStart + 1 - adjustment

	unlockedCount := clamp(rawDayIndex, 0, in.TotalCount)
	dayIndex := clamp(rawDayIndex, 1, in.TotalCount)

	return UnlockContext{
		DayIndex:      dayIndex,
		UnlockedCount: unlockedCount,
		TotalCount:    in.TotalCount,
		IsComplete:    unlockedCount >= in.TotalCount,
		UnlockHour:    in.UnlockHour,
		StartDate:     in.StartDate,
		Timezone:      timezone,
	}, nil
}

// epochDay counts calendar days since the Unix epoch for a date,
// independent of any timezone offset.
func epochDay(year int, month time.Month, day int) int {
	return int(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
