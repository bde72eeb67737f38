// Package biztime keeps storage in UTC and resolves calendar dates in the
// configured business timezone. Subscription start and end dates are
// calendar dates: Today returns midnight UTC of the current business day.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is used when Init was never called or got an empty name.
const DefaultTimezone = "UTC"

var (
	mu       sync.RWMutex
	location = time.UTC
	nowFunc  = time.Now
)

// Init sets the business timezone. Should be called once at startup.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	mu.Lock()
	location = loc
	mu.Unlock()
	return nil
}

// Location returns the business timezone location.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return location
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	mu.RLock()
	now := nowFunc
	mu.RUnlock()
	return now().UTC()
}

// DateOf returns the business calendar date of t, encoded as midnight UTC.
func DateOf(t time.Time) time.Time {
	local := t.In(Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current business date as midnight UTC.
func Today() time.Time {
	return DateOf(NowUTC())
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

// SetNowFunc replaces the clock and returns a function restoring the previous one.
// Intended for tests.
func SetNowFunc(fn func() time.Time) (restore func()) {
	mu.Lock()
	prev := nowFunc
	nowFunc = fn
	mu.Unlock()
	return func() {
		mu.Lock()
		nowFunc = prev
		mu.Unlock()
	}
}
