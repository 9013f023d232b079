package schedule

import (
	"testing"

	"github.com/mmcdole/salat/internal/domain"
	"github.com/mmcdole/salat/internal/log"
	"github.com/mmcdole/salat/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	st, err := store.New("") // memory-only
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewCache(st, log.NullLogger())
}

func TestCache_TimingsRoundTrip(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveTimings(testTimes(), "2026-09-01"))

	got, ok := c.LoadTimings("2026-09-01")
	assert.True(t, ok)
	assert.Equal(t, testTimes(), got)
}

func TestCache_StaleDateReadsAbsent(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveTimings(testTimes(), "2026-08-31"))

	_, ok := c.LoadTimings("2026-09-01")
	assert.False(t, ok, "yesterday's schedule must never surface")
}

func TestCache_EmptyStoreReadsAbsent(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.LoadTimings("2026-09-01")
	assert.False(t, ok)
	assert.Empty(t, c.LoadCompleted("2026-09-01"))
}

func TestCache_ClearTimings(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.SaveTimings(testTimes(), "2026-09-01"))
	c.ClearTimings()

	_, ok := c.LoadTimings("2026-09-01")
	assert.False(t, ok)
}

func TestCache_ToggleCompletedIsItsOwnInverse(t *testing.T) {
	c := newTestCache(t)
	const today = "2026-09-01"

	done := c.ToggleCompleted("Fajr", today)
	assert.True(t, done["Fajr"])

	done = c.ToggleCompleted("Fajr", today)
	assert.False(t, done["Fajr"])
	assert.Empty(t, c.LoadCompleted(today))
}

func TestCache_CompletedResetsOnDayRollover(t *testing.T) {
	c := newTestCache(t)

	c.ToggleCompleted("Fajr", "2026-08-31")
	c.ToggleCompleted("Dhuhr", "2026-08-31")

	// A new day reads empty, and a toggle re-tags the set for the new day.
	assert.Empty(t, c.LoadCompleted("2026-09-01"))

	done := c.ToggleCompleted("Asr", "2026-09-01")
	assert.Equal(t, map[string]bool{"Asr": true}, done)
	assert.Equal(t, map[string]bool{"Asr": true}, c.LoadCompleted("2026-09-01"))
}

func TestCache_CompletedSurvivesWithinSameDay(t *testing.T) {
	c := newTestCache(t)
	const today = "2026-09-01"

	c.ToggleCompleted("Maghrib", today)
	c.ToggleCompleted("Fajr", today)

	done := c.LoadCompleted(today)
	assert.Equal(t, map[string]bool{"Fajr": true, "Maghrib": true}, done)
}

func TestCache_MalformedStoredSetReadsEmpty(t *testing.T) {
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	c := NewCache(st, log.NullLogger())

	require.NoError(t, st.Set(domain.KeyCompletedDate, "2026-09-01"))
	require.NoError(t, st.Set(domain.KeyCompleted, "not-a-list"))

	assert.Empty(t, c.LoadCompleted("2026-09-01"))
}
