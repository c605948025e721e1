package model

import (
	"fmt"
	"strings"
	"time"
)

// Instant is a calendar date and wall-clock time with no time zone.
//
// It is read as local civil time at whatever longitude it is paired with;
// the longitude shifts solar time, no real zone lookup happens. Internally
// the wall clock is stored in a UTC time.Time so that arithmetic never
// crosses a DST transition.
type Instant struct {
	t time.Time
}

// InstantLayout is the zone-less ISO-8601 form used for every serialized instant.
const InstantLayout = "2006-01-02T15:04:05"

var instantLayouts = []string{
	InstantLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// NewInstant builds an Instant from calendar fields, rejecting anything that
// is not a real date/time (Feb 30, hour 24, ...).
func NewInstant(year int, month time.Month, day, hour, minute, second int) (Instant, error) {
	if month < time.January || month > time.December {
		return Instant{}, fmt.Errorf("%w: month %d", ErrInvalidInstant, month)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Instant{}, fmt.Errorf("%w: time %02d:%02d:%02d", ErrInvalidInstant, hour, minute, second)
	}
	t := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	// time.Date normalizes overflow, so a changed date means the input was not a calendar day.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Instant{}, fmt.Errorf("%w: %04d-%02d-%02d is not a calendar date", ErrInvalidInstant, year, month, day)
	}
	return Instant{t: t}, nil
}

// MustInstant is NewInstant for literals known to be valid. It panics otherwise.
func MustInstant(year int, month time.Month, day, hour, minute, second int) Instant {
	in, err := NewInstant(year, month, day, hour, minute, second)
	if err != nil {
		panic(err)
	}
	return in
}

// InstantOf keeps the wall clock of t and drops its zone. Sub-second precision is truncated.
func InstantOf(t time.Time) Instant {
	return Instant{t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParseInstant accepts "2006-01-02", "2006-01-02T15:04", "2006-01-02T15:04:05"
// and the space-separated variants.
func ParseInstant(s string) (Instant, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}, fmt.Errorf("%w: empty value", ErrInvalidInstant)
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return InstantOf(t), nil
		}
	}
	return Instant{}, fmt.Errorf("%w: %q, expected YYYY-MM-DD or YYYY-MM-DDTHH:MM[:SS]", ErrInvalidInstant, s)
}

// IsDateOnly reports whether s carries no time-of-day component.
func IsDateOnly(s string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return err == nil
}

// Time returns the wall clock as a UTC time.Time.
func (i Instant) Time() time.Time { return i.t }

func (i Instant) IsZero() bool { return i.t.IsZero() }

func (i Instant) Year() int         { return i.t.Year() }
func (i Instant) Month() time.Month { return i.t.Month() }
func (i Instant) Day() int          { return i.t.Day() }
func (i Instant) Hour() int         { return i.t.Hour() }
func (i Instant) Minute() int       { return i.t.Minute() }
func (i Instant) Second() int       { return i.t.Second() }
func (i Instant) YearDay() int      { return i.t.YearDay() }

// Unix is the wall clock read as seconds since 1970-01-01T00:00:00.
func (i Instant) Unix() int64 { return i.t.Unix() }

// ClockHours is the time of day in decimal hours.
func (i Instant) ClockHours() float64 {
	return float64(i.t.Hour()) + float64(i.t.Minute())/60 + float64(i.t.Second())/3600
}

// Date truncates to midnight of the same calendar day.
func (i Instant) Date() Instant {
	return Instant{t: time.Date(i.t.Year(), i.t.Month(), i.t.Day(), 0, 0, 0, 0, time.UTC)}
}

// EndOfDay returns 23:00 of the same calendar day, the last whole hour.
func (i Instant) EndOfDay() Instant {
	return Instant{t: time.Date(i.t.Year(), i.t.Month(), i.t.Day(), 23, 0, 0, 0, time.UTC)}
}

func (i Instant) Add(d time.Duration) Instant { return Instant{t: i.t.Add(d)} }

func (i Instant) Sub(j Instant) time.Duration { return i.t.Sub(j.t) }

func (i Instant) Before(j Instant) bool { return i.t.Before(j.t) }
func (i Instant) After(j Instant) bool  { return i.t.After(j.t) }
func (i Instant) Equal(j Instant) bool  { return i.t.Equal(j.t) }

// String renders the instant without a zone suffix, e.g. 2024-03-20T12:00:00.
func (i Instant) String() string {
	return i.t.Format(InstantLayout)
}

func (i Instant) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Instant) UnmarshalText(b []byte) error {
	in, err := ParseInstant(string(b))
	if err != nil {
		return err
	}
	*i = in
	return nil
}
