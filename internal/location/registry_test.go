package location

import (
	"context"
	"testing"

	"github.com/mmcdole/salat/internal/domain"
	"github.com/mmcdole/salat/internal/log"
	"github.com/mmcdole/salat/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	istanbul = domain.Location{City: "Istanbul, TUR", Lat: 41.01, Lon: 28.97}
	london   = domain.Location{City: "London, GBR", Lat: 51.51, Lon: -0.13}
	cairo    = domain.Location{City: "Cairo, EGY", Lat: 30.04, Lon: 31.24}
)

// fakeGeocoder resolves queries from a fixed table.
type fakeGeocoder struct {
	results map[string]domain.Location
	calls   int
}

func (f *fakeGeocoder) Search(_ context.Context, query string) (domain.Location, error) {
	f.calls++
	if loc, ok := f.results[query]; ok {
		return loc, nil
	}
	return domain.Location{}, domain.ErrLocationNotFound
}

func newTestRegistry(t *testing.T, geo *fakeGeocoder) *Registry {
	t.Helper()
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	if geo == nil {
		geo = &fakeGeocoder{}
	}
	return NewRegistry(st, geo, log.NullLogger())
}

func TestLoad_Empty(t *testing.T) {
	r := newTestRegistry(t, nil)

	saved, active := r.Load()
	assert.Empty(t, saved)
	assert.Nil(t, active)
}

func TestLoad_FallsBackToFirstSaved(t *testing.T) {
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Set(domain.KeySavedLocations, []domain.Location{london, cairo}))

	r := NewRegistry(st, &fakeGeocoder{}, log.NullLogger())
	saved, active := r.Load()

	assert.Len(t, saved, 2)
	require.NotNil(t, active)
	assert.Equal(t, london.City, active.City)
}

func TestLoad_PrefersLastSelected(t *testing.T) {
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Set(domain.KeySavedLocations, []domain.Location{london, cairo}))
	require.NoError(t, st.Set(domain.KeyLastLocation, cairo))

	r := NewRegistry(st, &fakeGeocoder{}, log.NullLogger())
	_, active := r.Load()

	require.NotNil(t, active)
	assert.Equal(t, cairo.City, active.City)
}

func TestSelect_PersistsLastSelected(t *testing.T) {
	st, err := store.New("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	r := NewRegistry(st, &fakeGeocoder{}, log.NullLogger())
	r.Load()
	r.Select(istanbul)

	require.NotNil(t, r.Active())
	assert.Equal(t, istanbul.City, r.Active().City)

	var stored domain.Location
	assert.True(t, st.Get(domain.KeyLastLocation, &stored))
	assert.Equal(t, istanbul, stored)
}

func TestAdd_ResolvesAndActivates(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{"istanbul": istanbul}}
	r := newTestRegistry(t, geo)
	r.Load()

	loc, err := r.Add(context.Background(), "istanbul")
	require.NoError(t, err)
	assert.Equal(t, istanbul, loc)

	assert.Equal(t, []domain.Location{istanbul}, r.Saved())
	require.NotNil(t, r.Active())
	assert.Equal(t, istanbul.City, r.Active().City)
}

func TestAdd_TwiceIsIdempotent(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{"istanbul": istanbul}}
	r := newTestRegistry(t, geo)
	r.Load()

	_, err := r.Add(context.Background(), "istanbul")
	require.NoError(t, err)
	_, err = r.Add(context.Background(), "istanbul")
	require.NoError(t, err)

	assert.Len(t, r.Saved(), 1, "re-adding a city must not duplicate it")
}

func TestAdd_PreservesUnsavedActiveLocation(t *testing.T) {
	// An auto-detected active location is not on the saved list; adding a
	// second city must save it rather than silently lose it.
	geo := &fakeGeocoder{results: map[string]domain.Location{"cairo": cairo}}
	r := newTestRegistry(t, geo)
	r.Load()
	r.Select(london)

	_, err := r.Add(context.Background(), "cairo")
	require.NoError(t, err)

	assert.Equal(t, []domain.Location{london, cairo}, r.Saved())
	assert.Equal(t, cairo.City, r.Active().City)
}

func TestAdd_NotFound(t *testing.T) {
	r := newTestRegistry(t, &fakeGeocoder{})
	r.Load()

	_, err := r.Add(context.Background(), "atlantis")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
	assert.Empty(t, r.Saved())
}

func TestRemove_ActivePromotesFirstRemaining(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{
		"london": london, "cairo": cairo,
	}}
	r := newTestRegistry(t, geo)
	r.Load()
	_, err := r.Add(context.Background(), "london")
	require.NoError(t, err)
	_, err = r.Add(context.Background(), "cairo")
	require.NoError(t, err)

	// Active is cairo; remove it.
	newActive, changed := r.Remove(cairo.City)
	assert.True(t, changed)
	require.NotNil(t, newActive)
	assert.Equal(t, london.City, newActive.City)
	assert.Equal(t, []domain.Location{london}, r.Saved())
}

func TestRemove_SoleLocationClearsActive(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{"london": london}}
	r := newTestRegistry(t, geo)
	r.Load()
	_, err := r.Add(context.Background(), "london")
	require.NoError(t, err)

	newActive, changed := r.Remove(london.City)
	assert.True(t, changed)
	assert.Nil(t, newActive)
	assert.Empty(t, r.Saved())
	assert.Nil(t, r.Active())
}

func TestRemove_NonActiveKeepsActive(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{
		"london": london, "cairo": cairo,
	}}
	r := newTestRegistry(t, geo)
	r.Load()
	_, _ = r.Add(context.Background(), "london")
	_, _ = r.Add(context.Background(), "cairo")

	newActive, changed := r.Remove(london.City)
	assert.False(t, changed)
	require.NotNil(t, newActive)
	assert.Equal(t, cairo.City, newActive.City)
}

func TestRemove_AbsentCityIsNoOp(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{"london": london}}
	r := newTestRegistry(t, geo)
	r.Load()
	_, _ = r.Add(context.Background(), "london")

	_, changed := r.Remove("Nowhere")
	assert.False(t, changed)
	assert.Len(t, r.Saved(), 1)
}

func TestSearch_RanksByQuery(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]domain.Location{
		"london": london, "cairo": cairo, "istanbul": istanbul,
	}}
	r := newTestRegistry(t, geo)
	r.Load()
	_, _ = r.Add(context.Background(), "london")
	_, _ = r.Add(context.Background(), "cairo")
	_, _ = r.Add(context.Background(), "istanbul")

	got := r.Search("istan")
	require.NotEmpty(t, got)
	assert.Equal(t, istanbul.City, got[0].City)

	assert.Len(t, r.Search(""), 3)
	assert.Empty(t, r.Search("zzzz"))
}
