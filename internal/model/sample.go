package model

import (
	"fmt"
	"time"
)

// PositionResult is the apparent sun position for one (GeoPoint, Instant).
// Angles are in degrees, solar time in hours.
type PositionResult struct {
	DayOfYear         int     `json:"day_of_year"`
	DeclinationDeg    float64 `json:"declination_deg"`
	EquationOfTimeMin float64 `json:"equation_of_time_min"`
	SolarTimeHours    float64 `json:"solar_time_hours"`
	HourAngleDeg      float64 `json:"hour_angle_deg"`
	ElevationDeg      float64 `json:"elevation_deg"`
}

// IrradianceSample is one hourly value of the series.
// IrradianceWm2 is in W/m² and is never negative.
type IrradianceSample struct {
	Instant       Instant `json:"datetime"`
	IrradianceWm2 float64 `json:"irradiance"`
}

// Period identifies a calendar day, or a calendar month when Day is 0.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day,omitempty"`
}

func DayPeriod(i Instant) Period {
	return Period{Year: i.Year(), Month: i.Month(), Day: i.Day()}
}

func MonthPeriod(i Instant) Period {
	return Period{Year: i.Year(), Month: i.Month()}
}

func (p Period) IsMonth() bool { return p.Day == 0 }

// Start is midnight of the first day covered by the period.
func (p Period) Start() Instant {
	day := p.Day
	if day == 0 {
		day = 1
	}
	return InstantOf(time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC))
}

// Before orders periods chronologically.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	if p.Month != q.Month {
		return p.Month < q.Month
	}
	return p.Day < q.Day
}

func (p Period) String() string {
	if p.IsMonth() {
		return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
	}
	return fmt.Sprintf("%04d-%02d-%02d", p.Year, int(p.Month), p.Day)
}

// ResampledPoint is a summed period (daily or monthly).
// AggregateWm2 is Σ of the hourly W/m² values in the period.
type ResampledPoint struct {
	Period       Period  `json:"period"`
	AggregateWm2 float64 `json:"irradiance"`
	Samples      int     `json:"samples"`
}

// BandPoint is the daily mean ± standard deviation of hourly values.
// Upper and Lower are not clamped; Lower can be negative.
type BandPoint struct {
	Period  Period  `json:"period"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Upper   float64 `json:"upper"`
	Lower   float64 `json:"lower"`
	Samples int     `json:"samples"`
}
