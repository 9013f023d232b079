package domain

import (
	"context"
	"time"
)

// Store is the persistent key-value layer. Get deserializes the stored
// value into dest and reports whether a usable value existed; a missing or
// malformed value reads as absent, never as an error.
type Store interface {
	Get(key string, dest any) bool
	Set(key string, value any) error
	Delete(key string)
	Close() error
}

// Persisted store keys. The location registry owns the location keys, the
// schedule cache owns the rest; nothing else writes them.
const (
	KeyLastLocation   = "last-location"
	KeySavedLocations = "saved-locations"
	KeyTimings        = "timings"
	KeyTimingsDate    = "timings-date"
	KeyCompleted      = "completed"
	KeyCompletedDate  = "completed-date"
)

// Clock supplies the current wall-clock instant. Injected so day-rollover
// and countdown logic are testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Geolocator resolves the device's position from ambient signals (IP).
type Geolocator interface {
	Detect(ctx context.Context) (Location, error)
}

// Geocoder resolves a free-text city query to a location.
// Returns ErrLocationNotFound when nothing matches.
type Geocoder interface {
	Search(ctx context.Context, query string) (Location, error)
}

// TimesProvider computes the five prayer times for a coordinate pair on
// the caller's current local date.
type TimesProvider interface {
	Timings(ctx context.Context, lat, lon float64) (PrayerTimes, error)
}
