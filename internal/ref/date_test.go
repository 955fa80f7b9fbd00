package ref

import (
	"errors"
	"testing"
	"time"
)

func TestSerialDate(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  float64
	}{
		{
			name:  "epoch day",
			input: time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			// Two days after the 1899-12-30 epoch, not one: the epoch is
			// deliberately offset from 1899-12-31.
			name:  "first of january 1900",
			input: time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:  2,
		},
		{
			name:  "midday after epoch",
			input: time.Date(1899, time.December, 31, 12, 0, 0, 0, time.UTC),
			want:  1.5,
		},
		{
			name:  "six hours in",
			input: time.Date(2023, time.June, 15, 6, 0, 0, 0, time.UTC),
			want:  45092.25,
		},
		{
			name:  "location does not shift the wall clock",
			input: time.Date(1900, time.January, 1, 0, 0, 0, 0, time.FixedZone("X", 3600)),
			want:  2,
		},
		{
			name:  "sub-second truncated",
			input: time.Date(1899, time.December, 31, 0, 0, 0, 999_999_999, time.UTC),
			want:  1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SerialDate(tt.input); got != tt.want {
				t.Errorf("SerialDate(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSerialDates(t *testing.T) {
	in := []time.Time{
		time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1899, time.December, 31, 12, 0, 0, 0, time.UTC),
	}
	got := SerialDates(in)
	want := []float64{2, 1.5}
	if len(got) != len(want) {
		t.Fatalf("SerialDates length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SerialDates[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSerialOf(t *testing.T) {
	d := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

	if got, err := SerialOf(d); err != nil || got != 2 {
		t.Errorf("SerialOf(time.Time) = %v, %v, want 2, nil", got, err)
	}
	if got, err := SerialOf(&d); err != nil || got != 2 {
		t.Errorf("SerialOf(*time.Time) = %v, %v, want 2, nil", got, err)
	}

	for _, input := range []any{"2023-01-01", 42, nil, []int{1}, (*time.Time)(nil)} {
		if _, err := SerialOf(input); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("SerialOf(%#v) error = %v, want ErrUnsupportedType", input, err)
		}
	}
}
