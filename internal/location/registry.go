package location

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/salat/internal/domain"
)

// Registry owns the saved-location list and the active location. It is
// the sole writer of the location store keys. City label is the identity
// key throughout; adds and removes are idempotent.
type Registry struct {
	store    domain.Store
	geocoder domain.Geocoder
	logger   *slog.Logger

	mu     sync.Mutex
	saved  []domain.Location
	active *domain.Location
}

// NewRegistry creates a registry over the given store and city geocoder.
func NewRegistry(store domain.Store, geocoder domain.Geocoder, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{store: store, geocoder: geocoder, logger: logger}
}

// Load restores the saved list and active location from the store. When no
// last-selected location was persisted the first saved entry becomes
// active; with nothing saved at all both come back empty.
func (r *Registry) Load() ([]domain.Location, *domain.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var saved []domain.Location
	r.store.Get(domain.KeySavedLocations, &saved)
	r.saved = saved

	var last domain.Location
	switch {
	case r.store.Get(domain.KeyLastLocation, &last) && last.Valid():
		r.active = &last
	case len(saved) > 0:
		loc := saved[0]
		r.active = &loc
	default:
		r.active = nil
	}

	r.logger.Debug("locations loaded", "saved", len(r.saved), "active", r.activeCity())
	return r.snapshotLocked()
}

// Active returns a copy of the active location, or nil.
func (r *Registry) Active() *domain.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return copyLoc(r.active)
}

// Saved returns a copy of the saved-location list.
func (r *Registry) Saved() []domain.Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Location(nil), r.saved...)
}

// Select makes loc the active location and persists it as last-selected.
// The caller is responsible for refreshing the schedule for it.
func (r *Registry) Select(loc domain.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = &loc
	if err := r.store.Set(domain.KeyLastLocation, loc); err != nil {
		r.logger.Error("failed to persist last location", "error", err, "city", loc.City)
	}
	r.logger.Info("location selected", "city", loc.City)
}

// Add resolves query through the geocoder and appends the result to the
// saved list, first making sure the currently active location is itself
// saved so it is not silently lost. Re-adding a known city only
// re-activates it. Returns the resolved location.
func (r *Registry) Add(ctx context.Context, query string) (domain.Location, error) {
	loc, err := r.geocoder.Search(ctx, query)
	if err != nil {
		r.logger.Error("city search failed", "error", err, "query", query)
		return domain.Location{}, err
	}

	r.mu.Lock()
	if r.active != nil && !r.contains(r.active.City) {
		r.saved = append(r.saved, *r.active)
	}
	if !r.contains(loc.City) {
		r.saved = append(r.saved, loc)
	}
	r.persistSavedLocked()
	r.mu.Unlock()

	r.Select(loc)
	return loc, nil
}

// Remove drops city from the saved list. When the active location is
// removed the first remaining entry takes over; removing the last entry
// clears the active location. Returns the new active location (nil when
// cleared) and whether the active location changed.
func (r *Registry) Remove(city string) (*domain.Location, bool) {
	r.mu.Lock()

	kept := r.saved[:0:0]
	for _, l := range r.saved {
		if l.City != city {
			kept = append(kept, l)
		}
	}
	r.saved = kept
	r.persistSavedLocked()

	wasActive := r.active != nil && r.active.City == city
	if !wasActive {
		r.mu.Unlock()
		return copyLoc(r.active), false
	}

	if len(r.saved) > 0 {
		next := r.saved[0]
		r.mu.Unlock()
		r.Select(next)
		return &next, true
	}

	r.active = nil
	r.store.Delete(domain.KeyLastLocation)
	r.mu.Unlock()
	r.logger.Info("last location removed", "city", city)
	return nil, true
}

// Search ranks saved locations against a partial query for quick
// switching. An empty query returns the full list in saved order.
func (r *Registry) Search(query string) []domain.Location {
	saved := r.Saved()
	if query == "" {
		return saved
	}

	cities := make([]string, len(saved))
	for i, l := range saved {
		cities[i] = l.City
	}

	ranks := fuzzy.RankFindNormalizedFold(query, cities)
	sort.Sort(ranks)

	out := make([]domain.Location, 0, len(ranks))
	for _, rank := range ranks {
		out = append(out, saved[rank.OriginalIndex])
	}
	return out
}

func (r *Registry) contains(city string) bool {
	for _, l := range r.saved {
		if l.City == city {
			return true
		}
	}
	return false
}

func (r *Registry) persistSavedLocked() {
	if err := r.store.Set(domain.KeySavedLocations, r.saved); err != nil {
		r.logger.Error("failed to persist saved locations", "error", err)
	}
}

func (r *Registry) snapshotLocked() ([]domain.Location, *domain.Location) {
	return append([]domain.Location(nil), r.saved...), copyLoc(r.active)
}

func (r *Registry) activeCity() string {
	if r.active == nil {
		return ""
	}
	return r.active.City
}

func copyLoc(l *domain.Location) *domain.Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
