package mmodel

import (
	"strconv"
	"time"
)

// MillisTime is a UTC instant marshaled on the wire as milliseconds since
// the Unix epoch, per spec: "All timestamps are UTC instants with
// millisecond precision on the wire."
type MillisTime time.Time

// Time returns the underlying time.Time value.
func (m MillisTime) Time() time.Time { return time.Time(m) }

// NewMillisTime truncates t to millisecond precision and wraps it.
func NewMillisTime(t time.Time) MillisTime {
	return MillisTime(t.UTC().Truncate(time.Millisecond))
}

func (m MillisTime) MarshalJSON() ([]byte, error) {
	ms := time.Time(m).UnixMilli()
	return []byte(strconv.FormatInt(ms, 10)), nil
}

func (m *MillisTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*m = MillisTime(time.Time{})
		return nil
	}

	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}

	*m = MillisTime(time.UnixMilli(ms).UTC())

	return nil
}

// IsZero reports whether the wrapped time is the zero value.
func (m MillisTime) IsZero() bool {
	return time.Time(m).IsZero()
}
