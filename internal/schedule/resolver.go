package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/salat/internal/domain"
)

const minutesPerDay = 24 * 60

// DateOf returns the local calendar date of t in the as-of tag format.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// Resolve determines the next prayer relative to now: the first prayer in
// canonical order whose time is strictly later than now, wrapping to
// tomorrow's Fajr once Isha has passed. The countdown is the remaining
// duration formatted "HH:MM" and is always non-negative.
func Resolve(times domain.PrayerTimes, now time.Time) domain.NextPrayer {
	nowMin := minutesOfDay(now)

	for _, name := range domain.PrayerOrder {
		at := times.At(name)
		m, ok := parseClock(at)
		if !ok {
			continue
		}
		if m > nowMin {
			return domain.NextPrayer{
				Name:      name,
				Time:      at,
				Countdown: formatCountdown(m - nowMin),
			}
		}
	}

	// All passed: next is tomorrow's Fajr.
	m, ok := parseClock(times.Fajr)
	if !ok {
		return domain.NoNextPrayer()
	}
	return domain.NextPrayer{
		Name:      "Fajr",
		Time:      times.Fajr,
		Countdown: formatCountdown(minutesPerDay - nowMin + m),
	}
}

// Elapsed reports whether the named prayer's time has already passed today.
// A prayer that is only reachable by wrapping to tomorrow never counts as
// elapsed for that next occurrence.
func Elapsed(times domain.PrayerTimes, name string, now time.Time) bool {
	m, ok := parseClock(times.At(name))
	if !ok {
		return false
	}
	return m <= minutesOfDay(now)
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// parseClock converts "HH:MM" to minutes since midnight. Trailing
// annotations like "05:21 (EET)" are tolerated.
func parseClock(s string) (int, bool) {
	s, _, _ = strings.Cut(strings.TrimSpace(s), " ")
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatCountdown(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
