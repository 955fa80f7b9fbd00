package ref

import (
	"fmt"
	"time"
)

// Excel counts days from 1899-12-30, not the 31st: the offset compensates
// for the host treating 1900 as a leap year.
var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialDate converts a timestamp to the spreadsheet serial date: whole days
// since the epoch plus the time of day as a fraction of 86400 seconds.
// Dates without a time component land on midnight. Sub-second precision is
// truncated, matching the host's own representation.
func SerialDate(t time.Time) float64 {
	u := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	d := u.Sub(epoch)
	days := d / (24 * time.Hour)
	seconds := (d - days*24*time.Hour) / time.Second
	return float64(days) + float64(seconds)/86400
}

// SerialDates converts a slice of timestamps element-wise, preserving order
// and length.
func SerialDates(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = SerialDate(t)
	}
	return out
}

// SerialOf converts a dynamically-typed value to a serial date. Only
// time.Time and *time.Time are supported; anything else is an
// ErrUnsupportedType error.
func SerialOf(v any) (float64, error) {
	switch t := v.(type) {
	case time.Time:
		return SerialDate(t), nil
	case *time.Time:
		if t == nil {
			return 0, fmt.Errorf("%w: nil *time.Time", ErrUnsupportedType)
		}
		return SerialDate(*t), nil
	default:
		return 0, fmt.Errorf("%w: must supply a time.Time, got %T", ErrUnsupportedType, v)
	}
}
