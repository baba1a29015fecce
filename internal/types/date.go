// Package types implements special types for the backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date is a calendar day. Debts and ledger transactions do not carry a
// meaningful time of day, so everything is truncated to day precision in UTC.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	year, month, day := time.Time(d).Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return time.Time(d).MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The date is expected as either an RFC3339 timestamp or a "2006-01-02"
// string. Everything below day precision is ignored.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`) // get rid of "
	if value == "" || value == "null" {
		return nil
	}

	// This allows to parse strings in the "2006-01-02" format
	match, err := regexp.MatchString("^[0-9]{4}-[0-9]{2}-[0-9]{2}$", value)
	if err != nil {
		return err
	}

	// This is the default pattern
	pattern := "2006-01-02T15:04:05Z07:00"
	if match {
		pattern = "2006-01-02"
	}

	t, err := time.Parse(pattern, value)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// DateOf returns the Date of the day a time occurs on, in UTC.
func DateOf(t time.Time) Date {
	year, month, day := t.UTC().Date()
	return NewDate(year, month, day)
}

// ParseDate parses a "2006-01-02" string and returns the Date it represents.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// Scan writes the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	*d = Date(nullTime.Time)
	return err
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	year, month, day := time.Time(d).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDate adds a specified amount of years, months and days.
func (d Date) AddDate(years, months, days int) Date {
	return Date(time.Time(d).AddDate(years, months, days))
}

// Before reports whether the date instant d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether the date instant d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e represent the same day.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}
