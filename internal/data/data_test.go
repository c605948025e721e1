package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/export"
	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationsSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "locations.json")
	list := DefaultLocations()
	require.NoError(t, SaveLocations(list, path))

	got, err := LoadLocations(path)
	require.NoError(t, err)
	assert.Equal(t, list.Locations, got.Locations)

	k, ok := got.Find("KAMPALA")
	require.True(t, ok)
	assert.InDelta(t, 32.58, k.Longitude, 1e-12)
}

func TestLoadLocationsRejectsBadCoordinates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"locations":[{"id":"x","latitude":95,"longitude":0}]}`), 0o644))

	_, err := LoadLocations(path)
	require.ErrorIs(t, err, model.ErrInvalidCoordinate)
}

func TestLoadLocationsOrDefault(t *testing.T) {
	list, err := LoadLocationsOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLocations().Locations, list.Locations)
}

func TestUpsert(t *testing.T) {
	list := &LocationList{}
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	replaced, err := list.Upsert(Location{ID: "b", Latitude: 1, Longitude: 2}, now)
	require.NoError(t, err)
	assert.False(t, replaced)
	_, err = list.Upsert(Location{ID: "a", Name: "A", Latitude: 3, Longitude: 4}, now)
	require.NoError(t, err)

	replaced, err = list.Upsert(Location{ID: "B", Name: "Bee", Latitude: 5, Longitude: 6}, now)
	require.NoError(t, err)
	assert.True(t, replaced)

	require.Len(t, list.Locations, 2)
	assert.Equal(t, "a", list.Locations[0].ID)
	assert.Equal(t, "b", list.Locations[1].ID)
	assert.Equal(t, "Bee", list.Locations[1].Name)
	assert.Equal(t, "2024-03-20T12:00:00Z", list.UpdatedAt)

	_, err = list.Upsert(Location{ID: "", Latitude: 0, Longitude: 0}, now)
	require.Error(t, err)
	_, err = list.Upsert(Location{ID: "c", Latitude: 0, Longitude: 200}, now)
	require.ErrorIs(t, err, model.ErrInvalidCoordinate)
}

func TestUpsertSortsIgnoringCase(t *testing.T) {
	list := &LocationList{}
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"b", "C", "a"} {
		_, err := list.Upsert(Location{ID: id, Latitude: 1, Longitude: 2}, now)
		require.NoError(t, err)
	}

	ids := make([]string, len(list.Locations))
	for i, l := range list.Locations {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"a", "b", "C"}, ids)
}

func TestSeriesCacheExpiry(t *testing.T) {
	c := NewSeriesCache(time.Minute, 0)
	defer c.Close()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	p := model.MustGeoPoint(0.31, 32.58)
	start := model.MustInstant(2024, time.March, 20, 0, 0, 0)
	end := start.EndOfDay()
	key := SeriesKey(p, start, end)
	c.Set(key, series.Generate(p, start, end))

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Len(t, got, 24)

	clock = clock.Add(2 * time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok)

	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}

func TestSeriesKeyDistinguishesInputs(t *testing.T) {
	p := model.MustGeoPoint(0.31, 32.58)
	start := model.MustInstant(2024, time.March, 20, 0, 0, 0)
	end := start.EndOfDay()

	assert.Equal(t, SeriesKey(p, start, end), SeriesKey(p, start, end))
	assert.NotEqual(t, SeriesKey(p, start, end), SeriesKey(p, start, end.Add(-time.Hour)))
	assert.NotEqual(t, SeriesKey(p, start, end), SeriesKey(model.MustGeoPoint(0.31, 32.59), start, end))
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *SeriesCache
	c.Set("k", nil)
	_, ok := c.Get("k")
	assert.False(t, ok)
	c.Clear()
	c.Close()
	assert.Equal(t, 0, c.Len())
}

func TestLoadSamplesJSONReadsExport(t *testing.T) {
	p := model.MustGeoPoint(0.31, 32.58)
	start := model.MustInstant(2023, time.March, 21, 0, 0, 0)
	samples := series.Generate(p, start, start.EndOfDay())

	path := filepath.Join(t.TempDir(), "hourly.json")
	require.NoError(t, export.WriteFile(path, export.FormatJSON, export.HourlyRows(samples), export.Options{}))

	got, err := LoadSamplesJSON(path)
	require.NoError(t, err)
	require.Len(t, got, len(samples))
	for i := range samples {
		assert.True(t, samples[i].Instant.Equal(got[i].Instant))
		assert.Equal(t, samples[i].IrradianceWm2, got[i].IrradianceWm2)
	}
}

func TestLoadSamplesJSONErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"irradiance":1}]`), 0o644))
	_, err := LoadSamplesJSON(bad)
	require.Error(t, err)

	_, err = LoadSamplesJSON(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
