package schedule

import "fmt"

// TimeOfDay is a wall-clock time without a date or timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a strict zero-padded "HH:MM" string. Anything
// else — missing padding, out-of-range values, trailing garbage —
// is rejected.
func ParseTimeOfDay(value string) (TimeOfDay, bool) {
	if len(value) != 5 || value[2] != ':' {
		return TimeOfDay{}, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return TimeOfDay{}, false
		}
	}

	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')
	if hour > 23 || minute > 59 {
		return TimeOfDay{}, false
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
