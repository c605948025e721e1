package solar

import (
	"math"
	"testing"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIrradianceEquatorEquinox(t *testing.T) {
	p := model.MustGeoPoint(0.31, 32.58)

	noon := Irradiance(p, model.MustInstant(2023, time.March, 21, 10, 7, 30))
	assert.Greater(t, noon, 1300.0)
	assert.Less(t, noon, 1400.0)
	assert.Equal(t, 1377.69, noon)

	midnight := Irradiance(p, model.MustInstant(2023, time.March, 21, 0, 0, 0))
	assert.Equal(t, 0.0, midnight)
}

func TestIrradianceArcticWinterSolstice(t *testing.T) {
	p := model.MustGeoPoint(66.5, 0)
	noon := model.MustInstant(2023, time.December, 21, 11, 49, 8)

	pos := Position(p, noon)
	require.Equal(t, 355, pos.DayOfYear)
	assert.InDelta(t, 0, pos.HourAngleDeg, 0.5)
	assert.InDelta(t, 0, pos.ElevationDeg, 0.5)

	g := Irradiance(p, noon)
	assert.GreaterOrEqual(t, g, 0.0)
	assert.Less(t, g, 15.0)
}

func TestIrradianceZeroIffSunDown(t *testing.T) {
	points := []model.GeoPoint{
		model.MustGeoPoint(0.31, 32.58),
		model.MustGeoPoint(51.5, -0.1),
		model.MustGeoPoint(-33.9, 18.4),
		model.MustGeoPoint(78.2, 15.6),
		model.MustGeoPoint(-89.9, 0),
	}
	start := model.MustInstant(2024, time.January, 1, 0, 0, 0)

	for _, p := range points {
		for h := 0; h < 24*366; h += 5 {
			at := start.Add(time.Duration(h) * time.Hour)
			pos := Position(p, at)
			g := Irradiance(p, at)

			require.GreaterOrEqual(t, g, 0.0, "%v at %v", p, at)
			require.False(t, math.IsNaN(g))
			if pos.ElevationDeg <= 0 {
				require.Equal(t, 0.0, g, "%v at %v elevation %v", p, at, pos.ElevationDeg)
			}
			if g > 0 {
				require.Greater(t, pos.ElevationDeg, 0.0)
			}
		}
	}
}

func TestFromPositionDegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, FromPosition(model.PositionResult{DayOfYear: 80, ElevationDeg: math.NaN()}))
	assert.Equal(t, 0.0, FromPosition(model.PositionResult{DayOfYear: 80, ElevationDeg: 0}))
	assert.Equal(t, 0.0, FromPosition(model.PositionResult{DayOfYear: 80, ElevationDeg: -12}))
	assert.Equal(t, 0.0, FromPosition(model.PositionResult{DayOfYear: 80, ElevationDeg: math.Inf(1)}))
}

func TestRoundCentsHalfAwayFromZero(t *testing.T) {
	// 0.125 and 0.625 are exact in binary, so these distinguish the rule from banker's rounding.
	assert.Equal(t, 0.13, roundCents(0.125))
	assert.Equal(t, 0.63, roundCents(0.625))
	assert.Equal(t, -0.13, roundCents(-0.125))
	assert.Equal(t, 1377.69, roundCents(1377.6912))
}

func TestEccentricityFactorRange(t *testing.T) {
	// Perihelion in early January, aphelion in early July.
	assert.InDelta(t, 1.035, EccentricityFactor(3), 0.002)
	assert.InDelta(t, 0.967, EccentricityFactor(185), 0.002)
	for n := 1; n <= 366; n++ {
		e := EccentricityFactor(n)
		require.Greater(t, e, 0.96)
		require.Less(t, e, 1.04)
	}
}

func TestCalculatorMatchesFreeFunctions(t *testing.T) {
	p := model.MustGeoPoint(47.6, -122.3)
	at := model.MustInstant(2024, time.June, 21, 13, 0, 0)

	c, err := NewCalculator(p, at)
	require.NoError(t, err)
	assert.Equal(t, DayOfYear(at), c.DayOfYear())
	assert.Equal(t, Position(p, at), c.Position())
	assert.Equal(t, Irradiance(p, at), c.Irradiance())

	_, err = NewCalculator(model.GeoPoint{Latitude: 95}, at)
	require.ErrorIs(t, err, model.ErrInvalidCoordinate)
}
