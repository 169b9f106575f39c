package dates

import (
	"errors"
	"sort"
	"time"
)

// Package for day-granularity calendar arithmetic

const layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Date is a calendar day without time-of-day. Comparable with ==,
// usable as a map key.
type Date struct {
	year  int
	month time.Month
	day   int
}

func New(year int, month time.Month, day int) Date {
	// Normalize through time.Date so overflowing day/month values wrap
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{year: y, month: m, day: d}
}

// Of discards the time-of-day component of t in t's own location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Of(t), nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return New(d.year, d.month, d.day+n)
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) After(o Date) bool {
	return d.Time().After(o.Time())
}

// DaysBetween returns b - a in whole days, negative when b is earlier.
func DaysBetween(a, b Date) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

func (d Date) String() string {
	return d.Time().Format(layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrInvalidDate
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DistinctDays maps timestamps to their calendar days, dropping duplicates,
// and returns them sorted ascending. Idempotent for a given input multiset.
func DistinctDays(ts []time.Time) []Date {
	seen := make(map[Date]struct{}, len(ts))
	days := make([]Date, 0, len(ts))
	for _, t := range ts {
		d := Of(t)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
