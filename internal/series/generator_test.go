package series

import (
	"context"
	"testing"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/solar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kampala = model.MustGeoPoint(0.31, 32.58)

func TestGenerateSingleInstant(t *testing.T) {
	at := model.MustInstant(2023, time.March, 21, 10, 0, 0)
	got := Generate(kampala, at, at)
	require.Len(t, got, 1)
	assert.True(t, got[0].Instant.Equal(at))
	assert.Equal(t, solar.Irradiance(kampala, at), got[0].IrradianceWm2)
}

func TestGenerateReversedRangeIsEmpty(t *testing.T) {
	t1 := model.MustInstant(2023, time.March, 21, 0, 0, 0)
	t2 := model.MustInstant(2023, time.March, 22, 0, 0, 0)
	got := Generate(kampala, t2, t1)
	assert.Empty(t, got)
	assert.Equal(t, 0, Len(t2, t1))
}

func TestGenerateStepAndEndpoints(t *testing.T) {
	start := model.MustInstant(2024, time.February, 28, 0, 0, 0)
	end := model.MustInstant(2024, time.March, 1, 23, 0, 0)

	got := Generate(kampala, start, end)
	require.Len(t, got, 72)
	assert.True(t, got[0].Instant.Equal(start))
	assert.True(t, got[len(got)-1].Instant.Equal(end))
	for i := 1; i < len(got); i++ {
		require.Equal(t, time.Hour, got[i].Instant.Sub(got[i-1].Instant))
	}
}

func TestGenerateUnalignedEndIsExcluded(t *testing.T) {
	start := model.MustInstant(2024, time.May, 1, 0, 30, 0)
	end := model.MustInstant(2024, time.May, 1, 3, 0, 0)

	got := Generate(kampala, start, end)
	require.Len(t, got, 3)
	assert.Equal(t, "2024-05-01T02:30:00", got[2].Instant.String())
}

func TestGenerateIsRestartable(t *testing.T) {
	start := model.MustInstant(2024, time.January, 1, 0, 0, 0)
	end := model.MustInstant(2024, time.January, 31, 23, 0, 0)
	assert.Equal(t, Generate(kampala, start, end), Generate(kampala, start, end))
}

func TestAllStopsEarly(t *testing.T) {
	start := model.MustInstant(2024, time.January, 1, 0, 0, 0)
	end := model.MustInstant(2030, time.January, 1, 0, 0, 0)

	var taken []model.IrradianceSample
	for s := range All(kampala, start, end) {
		taken = append(taken, s)
		if len(taken) == 5 {
			break
		}
	}
	require.Len(t, taken, 5)
	assert.Equal(t, Generate(kampala, start, start.Add(4*time.Hour)), taken)
}

func TestGenerateParallelMatchesSequential(t *testing.T) {
	start := model.MustInstant(2023, time.January, 1, 0, 0, 0)
	end := model.MustInstant(2023, time.December, 31, 23, 0, 0)

	want := Generate(kampala, start, end)
	for _, workers := range []int{0, 1, 3, 16} {
		got, err := GenerateParallel(context.Background(), kampala, start, end, workers)
		require.NoError(t, err)
		require.Equal(t, want, got, "workers=%d", workers)
	}

	empty, err := GenerateParallel(context.Background(), kampala, end, start, 4)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGenerateParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := model.MustInstant(2023, time.January, 1, 0, 0, 0)
	end := model.MustInstant(2023, time.December, 31, 23, 0, 0)
	_, err := GenerateParallel(ctx, kampala, start, end, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLenSpansCenturies(t *testing.T) {
	start := model.MustInstant(1700, time.January, 1, 0, 0, 0)
	end := model.MustInstant(2100, time.January, 1, 0, 0, 0)

	n := Len(start, end)
	require.Equal(t, 3506329, n)
	assert.Equal(t, end.String(), sampleAt(kampala, start, n-1).Instant.String())
	assert.Equal(t, "1700-01-01T01:00:00", sampleAt(kampala, start, 1).Instant.String())
}
