package analysis

import (
	"sort"

	"github.com/khristian7/Irradiation-Portal/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Summary is a descriptive overview of an hourly irradiance series.
type Summary struct {
	Count int           `json:"count"`
	Start model.Instant `json:"start"`
	End   model.Instant `json:"end"`

	PeakWm2 float64       `json:"peak_wm2"`
	PeakAt  model.Instant `json:"peak_at"`
	MeanWm2 float64       `json:"mean_wm2"`
	P95Wm2  float64       `json:"p95_wm2"`

	// DaylightHours counts samples with the sun above the horizon.
	DaylightHours int `json:"daylight_hours"`

	// InsolationKWhm2 is the energy per m² over the series: each hourly
	// sample contributes value × 1 h.
	InsolationKWhm2 float64 `json:"insolation_kwh_m2"`
}

// Summarize computes Summary over hourly samples. The zero Summary is
// returned for an empty series.
func Summarize(samples []model.IrradianceSample) Summary {
	s := Summary{}
	if len(samples) == 0 {
		return s
	}
	s.Count = len(samples)
	s.Start = samples[0].Instant
	s.End = samples[len(samples)-1].Instant

	sum := 0.0
	vals := make([]float64, 0, len(samples))
	s.PeakWm2 = samples[0].IrradianceWm2
	s.PeakAt = samples[0].Instant
	for _, it := range samples {
		v := it.IrradianceWm2
		vals = append(vals, v)
		sum += v
		if v > s.PeakWm2 {
			s.PeakWm2 = v
			s.PeakAt = it.Instant
		}
		if v > 0 {
			s.DaylightHours++
		}
	}
	sort.Float64s(vals)
	s.MeanWm2 = stat.Mean(vals, nil)
	s.P95Wm2 = stat.Quantile(0.95, stat.Empirical, vals, nil)
	s.InsolationKWhm2 = sum / 1000
	return s
}
