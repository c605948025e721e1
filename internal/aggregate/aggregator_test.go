package aggregate

import (
	"testing"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"
	"github.com/khristian7/Irradiation-Portal/internal/solar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kampala = model.MustGeoPoint(0.31, 32.58)

func sample(y int, mo time.Month, d, h int, v float64) model.IrradianceSample {
	return model.IrradianceSample{Instant: model.MustInstant(y, mo, d, h, 0, 0), IrradianceWm2: v}
}

func TestDailySumSingleDayRoundTrip(t *testing.T) {
	dayStart := model.MustInstant(2023, time.March, 21, 0, 0, 0)
	dayEnd := model.MustInstant(2023, time.March, 21, 23, 0, 0)

	hourly := series.Generate(kampala, dayStart, dayEnd)
	require.Len(t, hourly, 24)

	want := 0.0
	for h := 0; h < 24; h++ {
		want += solar.Irradiance(kampala, dayStart.Add(time.Duration(h)*time.Hour))
	}

	daily, err := Daily(hourly)
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, model.Period{Year: 2023, Month: time.March, Day: 21}, daily[0].Period)
	assert.Equal(t, 24, daily[0].Samples)
	assert.Equal(t, want, daily[0].AggregateWm2)
	assert.InDelta(t, 10503.92, daily[0].AggregateWm2, 1e-6)
}

func TestDailySumKeepsPartialDays(t *testing.T) {
	start := model.MustInstant(2024, time.June, 1, 20, 0, 0)
	end := model.MustInstant(2024, time.June, 3, 2, 0, 0)
	daily, err := Daily(series.Generate(kampala, start, end))
	require.NoError(t, err)

	require.Len(t, daily, 3)
	assert.Equal(t, 4, daily[0].Samples)
	assert.Equal(t, 24, daily[1].Samples)
	assert.Equal(t, 3, daily[2].Samples)
	assert.Equal(t, "2024-06-01", daily[0].Period.String())
	assert.Equal(t, "2024-06-03", daily[2].Period.String())
}

func TestMonthlySumEqualsSumOfDailySums(t *testing.T) {
	start := model.MustInstant(2024, time.February, 1, 0, 0, 0)
	end := model.MustInstant(2024, time.February, 29, 23, 0, 0)
	hourly := series.Generate(model.MustGeoPoint(51.5, -0.1), start, end)

	daily, err := Daily(hourly)
	require.NoError(t, err)
	require.Len(t, daily, 29)

	monthly, err := Monthly(hourly)
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.True(t, monthly[0].Period.IsMonth())
	assert.Equal(t, 29*24, monthly[0].Samples)

	sumOfDays := 0.0
	for _, d := range daily {
		sumOfDays += d.AggregateWm2
	}
	assert.InDelta(t, sumOfDays, monthly[0].AggregateWm2, 1e-6)
}

func TestMonthlyChronologicalAcrossYears(t *testing.T) {
	start := model.MustInstant(2023, time.November, 15, 0, 0, 0)
	end := model.MustInstant(2024, time.February, 2, 0, 0, 0)
	monthly, err := Monthly(series.Generate(kampala, start, end))
	require.NoError(t, err)

	var got []string
	for _, m := range monthly {
		got = append(got, m.Period.String())
	}
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"}, got)
}

func TestBandStatistics(t *testing.T) {
	samples := []model.IrradianceSample{
		sample(2024, time.March, 1, 0, 1),
		sample(2024, time.March, 1, 1, 2),
		sample(2024, time.March, 1, 2, 3),
		sample(2024, time.March, 1, 3, 4),
		sample(2024, time.March, 2, 0, 7),
	}
	bands, err := Band(samples)
	require.NoError(t, err)
	require.Len(t, bands, 2)

	// Sample standard deviation of 1..4 is sqrt(5/3).
	assert.InDelta(t, 2.5, bands[0].Mean, 1e-12)
	assert.InDelta(t, 1.2909944487358056, bands[0].Std, 1e-12)
	assert.InDelta(t, bands[0].Mean+bands[0].Std, bands[0].Upper, 1e-12)
	assert.InDelta(t, bands[0].Mean-bands[0].Std, bands[0].Lower, 1e-12)
	assert.Equal(t, 4, bands[0].Samples)

	// A lone sample has zero spread, not NaN.
	assert.Equal(t, 7.0, bands[1].Mean)
	assert.Equal(t, 0.0, bands[1].Std)
	assert.Equal(t, 7.0, bands[1].Upper)
	assert.Equal(t, 7.0, bands[1].Lower)
}

func TestBandLowerCanBeNegative(t *testing.T) {
	start := model.MustInstant(2023, time.March, 21, 0, 0, 0)
	end := model.MustInstant(2023, time.March, 21, 23, 0, 0)
	bands, err := Band(series.Generate(kampala, start, end))
	require.NoError(t, err)
	require.Len(t, bands, 1)
	assert.Less(t, bands[0].Lower, 0.0)
	assert.Greater(t, bands[0].Upper, bands[0].Mean)
}

func TestResampleRejectsOutOfOrderInput(t *testing.T) {
	samples := []model.IrradianceSample{
		sample(2024, time.March, 2, 0, 1),
		sample(2024, time.March, 1, 0, 2),
	}
	for _, p := range []Policy{DailySum, MonthlySum, DailyBand} {
		res, err := Resample(samples, p)
		require.ErrorIs(t, err, ErrUnordered, p.String())
		assert.Equal(t, 0, res.Len())
	}
}

func TestResampleEmptyAndUnknownPolicy(t *testing.T) {
	res, err := Resample(nil, DailySum)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())

	_, err = Resample([]model.IrradianceSample{sample(2024, time.March, 1, 0, 1)}, Policy(42))
	require.Error(t, err)
}

func TestPolicyFor(t *testing.T) {
	p, ok := PolicyFor(model.GranularityDaily)
	require.True(t, ok)
	assert.Equal(t, DailySum, p)

	p, ok = PolicyFor(model.GranularityMonthly)
	require.True(t, ok)
	assert.Equal(t, MonthlySum, p)

	p, ok = PolicyFor(model.GranularityDailyBand)
	require.True(t, ok)
	assert.Equal(t, DailyBand, p)

	_, ok = PolicyFor(model.GranularityHourly)
	assert.False(t, ok)
}
