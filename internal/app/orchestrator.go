package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mmcdole/salat/internal/domain"
	"github.com/mmcdole/salat/internal/location"
	"github.com/mmcdole/salat/internal/schedule"
)

// State is the orchestrator lifecycle phase.
type State int

const (
	StateUninitialized State = iota
	StateResolving
	StateReady
)

// Snapshot is the read-only view handed to the presentation layer. It is
// recomputed on demand and never stored.
type Snapshot struct {
	State      State
	Refreshing bool

	Active    *domain.Location
	Saved     []domain.Location
	Times     *domain.PrayerTimes
	Next      domain.NextPrayer
	Clock     string
	Completed map[string]bool
	Elapsed   map[string]bool
}

// Orchestrator drives the widget core: it decides on startup and on every
// location change whether the cached schedule can be trusted, fetches
// fresh timings only when necessary, and derives the next-prayer view
// from the injected clock. Fetches run off the caller's goroutine and
// never block snapshot reads.
type Orchestrator struct {
	registry   *location.Registry
	cache      *schedule.Cache
	times      domain.TimesProvider
	geolocator domain.Geolocator
	clock      domain.Clock
	logger     *slog.Logger

	mu          sync.Mutex
	state       State
	refreshing  bool
	current     *domain.PrayerTimes
	clockLayout string
}

// New creates an orchestrator. A nil clock defaults to the system clock.
func New(
	registry *location.Registry,
	cache *schedule.Cache,
	times domain.TimesProvider,
	geolocator domain.Geolocator,
	clock domain.Clock,
	logger *slog.Logger,
) *Orchestrator {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		registry:    registry,
		cache:       cache,
		times:       times,
		geolocator:  geolocator,
		clock:       clock,
		logger:      logger,
		clockLayout: "15:04",
	}
}

// SetTwelveHourClock switches the clock display to 12-hour format.
func (o *Orchestrator) SetTwelveHourClock(v bool) {
	o.mu.Lock()
	if v {
		o.clockLayout = "3:04 PM"
	} else {
		o.clockLayout = "15:04"
	}
	o.mu.Unlock()
}

// Start runs the startup decision ladder, first match wins:
//
//  1. active location + cache valid for today: adopt instantly, then
//     re-fetch silently in the background to self-correct;
//  2. active location only: foreground fetch before Ready;
//  3. saved locations only: select the first and fetch for it;
//  4. nothing saved: auto-detect, activate the result without saving it.
//
// Fetch failures leave the widget Ready with whatever was adopted (or no
// data at all); retries are user-initiated only.
func (o *Orchestrator) Start(ctx context.Context) {
	o.setState(StateResolving)
	saved, active := o.registry.Load()
	today := schedule.DateOf(o.clock.Now())

	if active != nil {
		if times, ok := o.cache.LoadTimings(today); ok {
			o.setTimes(times)
			o.setState(StateReady)
			o.logger.Info("adopted cached schedule", "city", active.City, "date", today)
			go o.refresh(context.WithoutCancel(ctx), *active, true)
			return
		}

		if err := o.refresh(ctx, *active, false); err != nil {
			o.logger.Error("startup fetch failed", "error", err, "city", active.City)
		}
		o.setState(StateReady)
		return
	}

	if len(saved) > 0 {
		o.SelectLocation(ctx, saved[0])
		o.setState(StateReady)
		return
	}

	loc, err := o.geolocator.Detect(ctx)
	if err != nil {
		o.logger.Error("location auto-detect failed", "error", err)
		o.setState(StateReady)
		return
	}
	o.registry.Select(loc)
	if err := o.refresh(ctx, loc, false); err != nil {
		o.logger.Error("startup fetch failed", "error", err, "city", loc.City)
	}
	o.setState(StateReady)
}

// SelectLocation makes loc active and refreshes its schedule in the
// foreground. A fetch failure keeps the previous display intact.
func (o *Orchestrator) SelectLocation(ctx context.Context, loc domain.Location) error {
	o.registry.Select(loc)
	return o.refresh(ctx, loc, false)
}

// AddLocation resolves query to a city, saves and activates it, and
// refreshes its schedule. Returns domain.ErrLocationNotFound for an
// unresolvable query so the presentation layer can alert.
func (o *Orchestrator) AddLocation(ctx context.Context, query string) (domain.Location, error) {
	loc, err := o.registry.Add(ctx, query)
	if err != nil {
		return domain.Location{}, err
	}
	if err := o.refresh(ctx, loc, false); err != nil {
		o.logger.Error("fetch for added location failed", "error", err, "city", loc.City)
	}
	return loc, nil
}

// RemoveLocation drops a saved city. Removing the active city promotes
// the first remaining location (with a refresh for it); removing the last
// one clears both the active location and the displayed schedule.
func (o *Orchestrator) RemoveLocation(ctx context.Context, city string) {
	newActive, changed := o.registry.Remove(city)
	if !changed {
		return
	}
	if newActive != nil {
		if err := o.refresh(ctx, *newActive, false); err != nil {
			o.logger.Error("fetch after removal failed", "error", err, "city", newActive.City)
		}
		return
	}

	o.cache.ClearTimings()
	o.mu.Lock()
	o.current = nil
	o.mu.Unlock()
}

// ToggleCompleted flips the done mark on a prayer for today.
func (o *Orchestrator) ToggleCompleted(name string) {
	today := schedule.DateOf(o.clock.Now())
	o.cache.ToggleCompleted(name, today)
}

// Retry re-fetches the schedule for the active location. No-op without one.
func (o *Orchestrator) Retry(ctx context.Context) error {
	active := o.registry.Active()
	if active == nil {
		return nil
	}
	return o.refresh(ctx, *active, false)
}

// Snapshot computes the current presentation view. Called on every tick;
// resolver output and the completed set are derived fresh so both the
// countdown and the day-scoped state roll over without any fetch.
func (o *Orchestrator) Snapshot() Snapshot {
	now := o.clock.Now()
	today := schedule.DateOf(now)

	o.mu.Lock()
	state := o.state
	refreshing := o.refreshing
	layout := o.clockLayout
	var times *domain.PrayerTimes
	if o.current != nil {
		t := *o.current
		times = &t
	}
	o.mu.Unlock()

	snap := Snapshot{
		State:      state,
		Refreshing: refreshing,
		Active:     o.registry.Active(),
		Saved:      o.registry.Saved(),
		Times:      times,
		Next:       domain.NoNextPrayer(),
		Clock:      now.Format(layout),
		Completed:  o.cache.LoadCompleted(today),
		Elapsed:    make(map[string]bool, len(domain.PrayerOrder)),
	}
	if times != nil {
		snap.Next = schedule.Resolve(*times, now)
		for _, name := range domain.PrayerOrder {
			snap.Elapsed[name] = schedule.Elapsed(*times, name, now)
		}
	}
	return snap
}

// refresh fetches timings for loc and installs them unless the active
// location moved on while the fetch was in flight (the superseded result
// is discarded, not raced). Silent refreshes skip the refreshing flag so
// background self-correction never flickers the display.
func (o *Orchestrator) refresh(ctx context.Context, loc domain.Location, silent bool) error {
	if !silent {
		o.setRefreshing(true)
		defer o.setRefreshing(false)
	}

	times, err := o.times.Timings(ctx, loc.Lat, loc.Lon)
	if err != nil {
		o.logger.Error("failed to fetch timings", "error", err, "city", loc.City)
		return err
	}

	active := o.registry.Active()
	if active == nil || active.City != loc.City {
		o.logger.Debug("discarding superseded timings", "city", loc.City)
		return nil
	}

	o.setTimes(times)

	today := schedule.DateOf(o.clock.Now())
	if err := o.cache.SaveTimings(times, today); err != nil {
		o.logger.Error("failed to cache timings", "error", err, "city", loc.City)
	}
	o.logger.Info("timings refreshed", "city", loc.City, "date", today)
	return nil
}

func (o *Orchestrator) setTimes(times domain.PrayerTimes) {
	o.mu.Lock()
	o.current = &times
	o.mu.Unlock()
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) setRefreshing(v bool) {
	o.mu.Lock()
	o.refreshing = v
	o.mu.Unlock()
}
