package task

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time-of-day or zone. The zero value is
// January 1, year 1.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD, or an RFC 3339 timestamp whose date part is used.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
}

func (d Date) String() string {
	return d.t.Format(dateLayout)
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Sub returns the number of days from o to d.
func (d Date) Sub(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}
