package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat is the canonical wire and storage format for a time of day.
const TimeFormat = "15:04:05"

var (
	// ErrInvalidTimeString is returned when a string does not match TimeFormat.
	ErrInvalidTimeString = errors.New("types: invalid time string format")
)

// TimeString represents a time of day as an "HH:MM:SS" string.
// It is used instead of time.Time for slot values because slots carry no
// date and no timezone and are compared by exact value equality.
type TimeString string

// NewTimeString builds a TimeString from the clock-time part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM:SS" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// Validate checks that the value matches TimeFormat.
func (ts TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// IsZero reports whether the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// String returns the canonical "HH:MM:SS" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// Value implements driver.Valuer so the value maps onto a TIME column.
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as string,
// []byte or time.Time depending on the driver code path.
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}
