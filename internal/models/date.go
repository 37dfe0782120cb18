package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar-day value as delivered by the remote service. The wire
// format is inconsistent across document subtypes (bare date, ISO datetime,
// empty string, null), so decoding is tolerant: anything unparseable becomes
// the zero Date, which downstream code treats as "no due date".
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// NewDate builds a Date truncated to day granularity.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day granularity.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateOf(t)
			return nil
		}
	}
	// Malformed dates degrade to "no due date" instead of failing the record.
	d.Time = time.Time{}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) Scan(v any) error {
	switch t := v.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		*d = DateOf(t)
	case string:
		return d.UnmarshalJSON([]byte(t))
	case []byte:
		return d.UnmarshalJSON(t)
	default:
		return fmt.Errorf("cannot scan %T into Date", v)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// DaysSince returns the whole calendar days elapsed from d to asOf. Negative
// when d is in the future.
func (d Date) DaysSince(asOf time.Time) int {
	from := DateOf(asOf)
	return int(from.Sub(d.Time) / (24 * time.Hour))
}
