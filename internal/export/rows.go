// Package export flattens irradiance results into rows and writes them as
// CSV, JSON or Parquet, optionally gzip-compressed.
//
// Timestamps are ISO-8601 without a zone suffix: local civil time at the
// requested longitude.
package export

import (
	"github.com/khristian7/Irradiation-Portal/internal/aggregate"
	"github.com/khristian7/Irradiation-Portal/internal/model"
)

// Row is one timestamped value: an hourly sample, or a daily/monthly sum
// stamped at the start of its period.
type Row struct {
	Timestamp     string  `json:"timestamp" parquet:"timestamp"`
	IrradianceWm2 float64 `json:"irradiance" parquet:"irradiance"`
}

// BandRow is one day of the mean ± std band.
type BandRow struct {
	Timestamp string  `json:"timestamp" parquet:"timestamp"`
	Mean      float64 `json:"mean" parquet:"mean"`
	Std       float64 `json:"std" parquet:"std"`
	Upper     float64 `json:"upper" parquet:"upper"`
	Lower     float64 `json:"lower" parquet:"lower"`
	Samples   int32   `json:"samples" parquet:"samples"`
}

// Record is the set of row types the writers accept.
type Record interface {
	Row | BandRow
	csvHeader() []string
	csvFields() []string
}

func HourlyRows(samples []model.IrradianceSample) []Row {
	out := make([]Row, len(samples))
	for i, s := range samples {
		out[i] = Row{Timestamp: s.Instant.String(), IrradianceWm2: s.IrradianceWm2}
	}
	return out
}

// SumRows stamps each period at its first instant; months use the 1st at midnight.
func SumRows(points []model.ResampledPoint) []Row {
	out := make([]Row, len(points))
	for i, p := range points {
		out[i] = Row{Timestamp: p.Period.Start().String(), IrradianceWm2: p.AggregateWm2}
	}
	return out
}

func BandRows(points []model.BandPoint) []BandRow {
	out := make([]BandRow, len(points))
	for i, p := range points {
		out[i] = BandRow{
			Timestamp: p.Period.Start().String(),
			Mean:      p.Mean,
			Std:       p.Std,
			Upper:     p.Upper,
			Lower:     p.Lower,
			Samples:   int32(p.Samples),
		}
	}
	return out
}

// ResultRows flattens a resample result. Band results yield nil rows and
// non-nil bands, sum results the reverse.
func ResultRows(res aggregate.Result) ([]Row, []BandRow) {
	if res.Policy == aggregate.DailyBand {
		return nil, BandRows(res.Bands)
	}
	return SumRows(res.Sums), nil
}
