package schedule

import (
	"log/slog"

	"github.com/mmcdole/salat/internal/domain"
)

// Cache owns the day-scoped persisted state: today's timings and today's
// completed-prayer set. Validity is an exact calendar-date match against
// the stored as-of tag; a stale entry reads as absent and is overwritten
// lazily on the next save.
type Cache struct {
	store  domain.Store
	logger *slog.Logger
}

// NewCache creates a schedule cache over the given store.
func NewCache(store domain.Store, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{store: store, logger: logger}
}

// LoadTimings returns the cached timings when they were computed for
// today. Anything else (missing, malformed, stale) reads as absent.
func (c *Cache) LoadTimings(today string) (domain.PrayerTimes, bool) {
	var asOf string
	if !c.store.Get(domain.KeyTimingsDate, &asOf) || asOf != today {
		c.logger.Debug("timings cache stale", "asOf", asOf, "today", today)
		return domain.PrayerTimes{}, false
	}
	var times domain.PrayerTimes
	if !c.store.Get(domain.KeyTimings, &times) {
		return domain.PrayerTimes{}, false
	}
	c.logger.Debug("timings cache fresh", "asOf", asOf)
	return times, true
}

// SaveTimings persists timings tagged with today's date. The date tag is
// written last so a partial write can never validate foreign timings.
func (c *Cache) SaveTimings(times domain.PrayerTimes, today string) error {
	if err := c.store.Set(domain.KeyTimings, times); err != nil {
		return err
	}
	return c.store.Set(domain.KeyTimingsDate, today)
}

// ClearTimings drops the cached timings entirely (used when the last
// saved location is removed).
func (c *Cache) ClearTimings() {
	c.store.Delete(domain.KeyTimingsDate)
	c.store.Delete(domain.KeyTimings)
}

// LoadCompleted returns today's completed-prayer set. A set saved for a
// prior day reads as empty.
func (c *Cache) LoadCompleted(today string) map[string]bool {
	done := make(map[string]bool)
	var asOf string
	if !c.store.Get(domain.KeyCompletedDate, &asOf) || asOf != today {
		return done
	}
	var names []string
	if !c.store.Get(domain.KeyCompleted, &names) {
		return done
	}
	for _, n := range names {
		done[n] = true
	}
	return done
}

// ToggleCompleted flips membership of name in today's completed set and
// persists the result tagged with today, superseding any stale tag.
func (c *Cache) ToggleCompleted(name, today string) map[string]bool {
	done := c.LoadCompleted(today)
	if done[name] {
		delete(done, name)
	} else {
		done[name] = true
	}

	names := make([]string, 0, len(done))
	for _, n := range domain.PrayerOrder {
		if done[n] {
			names = append(names, n)
		}
	}
	if err := c.store.Set(domain.KeyCompleted, names); err != nil {
		c.logger.Error("failed to save completed set", "error", err)
	}
	if err := c.store.Set(domain.KeyCompletedDate, today); err != nil {
		c.logger.Error("failed to save completed date", "error", err)
	}
	return done
}
