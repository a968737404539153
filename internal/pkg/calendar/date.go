// Package calendar holds date-only values as the CRM exchanges them
// (YYYY-MM-DD, no time of day, local calendar).
package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// Date is a calendar day. The zero value means "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the calendar day t falls on in t's location.
func Of(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// Today is the current local day.
func Today() Date {
	return Of(time.Now())
}

func Parse(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	// Accept full timestamps from the backend; only the date part matters.
	if len(s) > len(Layout) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return Of(t), nil
		}
		s = s[:len(Layout)]
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Of(t), nil
}

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return Of(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of whole days from d to other; negative when
// other is before d.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

func (d Date) Equal(other Date) bool {
	return d == other
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
