// Package dates coerces the loosely-typed date values found in playlist
// exports (timestamps, layout variants) into time.Time.
package dates

import (
	"fmt"
	"time"
)

var layouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"20060102",
}

// ToTime converts a value to time.Time. Supported inputs: time.Time,
// unix seconds as int/int64/float64, and strings in one of the known
// layouts. Anything else is a validation error reported to the caller.
func ToTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case int:
		return time.Unix(int64(v), 0), nil
	case int64:
		return time.Unix(v, 0), nil
	case float64:
		sec := int64(v)
		nsec := int64((v - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec), nil
	case string:
		for _, layout := range layouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date string: %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported date type: %T", value)
	}
}

// TruncateToDay drops the time-of-day component.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CompareDay compares two values at day granularity: -1, 0 or 1.
func CompareDay(a, b interface{}) (int, error) {
	ta, err := ToTime(a)
	if err != nil {
		return 0, err
	}
	tb, err := ToTime(b)
	if err != nil {
		return 0, err
	}
	da, db := TruncateToDay(ta), TruncateToDay(tb)
	switch {
	case da.Before(db):
		return -1, nil
	case da.After(db):
		return 1, nil
	default:
		return 0, nil
	}
}

// IsToday reports whether the value falls on the current day.
func IsToday(value interface{}) (bool, error) {
	t, err := ToTime(value)
	if err != nil {
		return false, err
	}
	return TruncateToDay(t).Equal(TruncateToDay(time.Now())), nil
}

// IsBetween reports whether target falls between start and end.
func IsBetween(target, start, end interface{}, inclusive bool) (bool, error) {
	t, err := ToTime(target)
	if err != nil {
		return false, err
	}
	ts, err := ToTime(start)
	if err != nil {
		return false, err
	}
	te, err := ToTime(end)
	if err != nil {
		return false, err
	}
	if inclusive {
		return !t.Before(ts) && !t.After(te), nil
	}
	return t.After(ts) && t.Before(te), nil
}

// AddDays returns the value shifted by the given number of days.
func AddDays(value interface{}, days int) (time.Time, error) {
	t, err := ToTime(value)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, days), nil
}
