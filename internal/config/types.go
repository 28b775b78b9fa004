package config

import (
	"strings"
	"time"
)

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting values such as "1.5s" or "5m".
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// String returns a human-readable string representation of the duration.
func (d *Duration) String() string {
	if d == nil {
		return ""
	}
	return time.Duration(*d).String()
}

// Value returns the wrapped time.Duration, or zero when d is nil.
func (d *Duration) Value() time.Duration {
	if d == nil {
		return 0
	}
	return time.Duration(*d)
}
