package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. The zero value means unset.
type Date string

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local calendar date.
func Today() Date {
	return NewDate(time.Now())
}

func (d Date) IsZero() bool {
	return d == ""
}

// Time parses the date. Unset or malformed dates return an error.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// Valid reports whether d is a well-formed calendar date.
func (d Date) Valid() bool {
	_, err := d.Time()
	return err == nil
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return NewDate(t.AddDate(0, 0, n))
}

// Ptr returns a pointer to d, or nil if d is unset.
func (d Date) Ptr() *Date {
	if d.IsZero() {
		return nil
	}
	return &d
}

// Value stores unset dates as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	t, err := d.Time()
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", string(d), err)
	}
	return t, nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = NewDate(v)
	case string:
		*d = Date(trimDate(v))
	case []byte:
		*d = Date(trimDate(string(v)))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// trimDate drops any time-of-day suffix a driver may return.
func trimDate(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}
