package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEquinoxDay(t *testing.T) {
	p := model.MustGeoPoint(0.31, 32.58)
	start := model.MustInstant(2023, time.March, 21, 0, 0, 0)
	s := Summarize(series.Generate(p, start, start.EndOfDay()))

	assert.Equal(t, 24, s.Count)
	assert.Equal(t, "2023-03-21T00:00:00", s.Start.String())
	assert.Equal(t, "2023-03-21T23:00:00", s.End.String())
	assert.Equal(t, 1376.95, s.PeakWm2)
	assert.Equal(t, "2023-03-21T10:00:00", s.PeakAt.String())
	assert.Equal(t, 12, s.DaylightHours)
	assert.InDelta(t, 10.50392, s.InsolationKWhm2, 1e-9)
	assert.InDelta(t, 10503.92/24, s.MeanWm2, 1e-9)
	assert.Equal(t, 1341.72, s.P95Wm2)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestRankSitesOrdersByInsolation(t *testing.T) {
	sites := []data.Location{
		{ID: "tromso", Latitude: 69.65, Longitude: 18.96},
		{ID: "london", Latitude: 51.51, Longitude: -0.13},
		{ID: "kampala", Latitude: 0.31, Longitude: 32.58},
		{ID: "cairo", Latitude: 30.04, Longitude: 31.24},
	}
	start := model.MustInstant(2024, time.January, 1, 0, 0, 0)
	end := model.MustInstant(2024, time.December, 31, 23, 0, 0)

	ranked, err := RankSites(context.Background(), sites, start, end, 2)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Location.ID
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, 8784, r.Summary.Count)
	}
	assert.Equal(t, []string{"kampala", "cairo", "london", "tromso"}, ids)
	assert.InDelta(t, 3662.17, ranked[0].Summary.InsolationKWhm2, 0.01)
}

func TestRankSitesInvalidSite(t *testing.T) {
	sites := []data.Location{{ID: "bad", Latitude: 120}}
	start := model.MustInstant(2024, time.January, 1, 0, 0, 0)

	_, err := RankSites(context.Background(), sites, start, start.EndOfDay(), 0)
	require.ErrorIs(t, err, model.ErrInvalidCoordinate)
}

func TestRankSitesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := model.MustInstant(2024, time.January, 1, 0, 0, 0)

	_, err := RankSites(ctx, data.DefaultLocations().Locations, start, start.EndOfDay(), 0)
	require.ErrorIs(t, err, context.Canceled)
}
