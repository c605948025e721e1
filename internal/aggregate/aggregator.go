package aggregate

import (
	"errors"
	"fmt"
	"math"

	"github.com/khristian7/Irradiation-Portal/internal/model"

	"gonum.org/v1/gonum/stat"
)

// ErrUnordered is returned when a sample is earlier than the one before it.
// Resampling requires chronological input; nothing is emitted in that case.
var ErrUnordered = errors.New("samples are not in chronological order")

// Result holds the output of one policy. Exactly one of Sums or Bands is
// populated, according to Policy.
type Result struct {
	Policy Policy
	Sums   []model.ResampledPoint
	Bands  []model.BandPoint
}

// Len is the number of emitted periods.
func (r Result) Len() int {
	if r.Policy == DailyBand {
		return len(r.Bands)
	}
	return len(r.Sums)
}

type group struct {
	period model.Period
	values []float64
}

// Resample applies policy to samples. Groups are emitted in order of first
// appearance; partial periods (e.g. a boundary day with fewer than 24 samples)
// are kept.
func Resample(samples []model.IrradianceSample, policy Policy) (Result, error) {
	res := Result{Policy: policy}
	if err := checkOrder(samples); err != nil {
		return res, err
	}

	switch policy {
	case DailySum, MonthlySum:
		groups := groupBy(samples, policy)
		res.Sums = make([]model.ResampledPoint, 0, len(groups))
		for _, g := range groups {
			// Plain left-to-right accumulation keeps the total bit-identical
			// to summing the hourly values in order.
			total := 0.0
			for _, v := range g.values {
				total += v
			}
			res.Sums = append(res.Sums, model.ResampledPoint{
				Period:       g.period,
				AggregateWm2: total,
				Samples:      len(g.values),
			})
		}
	case DailyBand:
		groups := groupBy(samples, policy)
		res.Bands = make([]model.BandPoint, 0, len(groups))
		for _, g := range groups {
			mean, std := meanStd(g.values)
			res.Bands = append(res.Bands, model.BandPoint{
				Period:  g.period,
				Mean:    mean,
				Std:     std,
				Upper:   mean + std,
				Lower:   mean - std,
				Samples: len(g.values),
			})
		}
	default:
		return res, fmt.Errorf("unknown resampling policy %v", policy)
	}
	return res, nil
}

// Daily is Resample with DailySum.
func Daily(samples []model.IrradianceSample) ([]model.ResampledPoint, error) {
	res, err := Resample(samples, DailySum)
	return res.Sums, err
}

// Monthly is Resample with MonthlySum.
func Monthly(samples []model.IrradianceSample) ([]model.ResampledPoint, error) {
	res, err := Resample(samples, MonthlySum)
	return res.Sums, err
}

// Band is Resample with DailyBand.
func Band(samples []model.IrradianceSample) ([]model.BandPoint, error) {
	res, err := Resample(samples, DailyBand)
	return res.Bands, err
}

func checkOrder(samples []model.IrradianceSample) error {
	for i := 1; i < len(samples); i++ {
		if samples[i].Instant.Before(samples[i-1].Instant) {
			return fmt.Errorf("%w: %s follows %s at index %d",
				ErrUnordered, samples[i].Instant, samples[i-1].Instant, i)
		}
	}
	return nil
}

// groupBy relies on chronological input: a period never reappears once its
// run has ended, so a change of key always opens a new group.
func groupBy(samples []model.IrradianceSample, policy Policy) []group {
	var groups []group
	for _, s := range samples {
		key := policy.period(s.Instant)
		if n := len(groups); n > 0 && groups[n-1].period == key {
			groups[n-1].values = append(groups[n-1].values, s.IrradianceWm2)
			continue
		}
		groups = append(groups, group{period: key, values: []float64{s.IrradianceWm2}})
	}
	return groups
}

// meanStd uses the sample (n-1) standard deviation. A single value has Std 0.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 1 {
		return values[0], 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}
