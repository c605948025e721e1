// Package solar computes the apparent sun position and the extraterrestrial
// (top-of-atmosphere) irradiance for a point on Earth at a given instant.
//
// All functions are pure and safe for concurrent use.
package solar

import (
	"math"

	"github.com/khristian7/Irradiation-Portal/internal/model"

	"github.com/soniakeys/meeus/v3/julian"
)

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 { return deg * (math.Pi / 180.0) }

// radToDeg converts an angle from radians to degrees for human-readable output
func radToDeg(rad float64) float64 { return rad * (180.0 / math.Pi) }

// DayOfYear returns the ordinal day of t's calendar date (1-365, or 366 in leap years).
func DayOfYear(t model.Instant) int {
	return julian.DayOfYearGregorian(t.Year(), int(t.Month()), t.Day())
}

// dayAngle is B = 2π(n-1)/365 in radians, shared by the equation of time
// and the eccentricity correction.
func dayAngle(dayOfYear int) float64 {
	return 2 * math.Pi * float64(dayOfYear-1) / 365
}

// Declination is the solar declination in degrees (Cooper's formula).
func Declination(dayOfYear int) float64 {
	return 23.45 * math.Sin(2*math.Pi*float64(284+dayOfYear)/365)
}

// EquationOfTime is apparent minus mean solar time, in minutes.
func EquationOfTime(dayOfYear int) float64 {
	b := dayAngle(dayOfYear)
	return 9.87*math.Cos(2*b) - 7.53*math.Sin(b) - 1.5*math.Sin(b)
}

// Position computes the sun position at p for the instant t, read as local
// civil time at p's longitude.
func Position(p model.GeoPoint, t model.Instant) model.PositionResult {
	return position(p, t, DayOfYear(t))
}

func position(p model.GeoPoint, t model.Instant, dayOfYear int) model.PositionResult {
	decl := Declination(dayOfYear)
	eot := EquationOfTime(dayOfYear)

	// Longitude shifts the wall clock by 4 min/degree; no zone meridian is applied.
	solarTime := math.Mod(t.ClockHours()+eot/60+p.Longitude/15, 24)
	if solarTime < 0 {
		solarTime += 24
	}
	if solarTime >= 24 {
		solarTime = 0
	}
	hourAngle := 15 * (solarTime - 12)

	latRad := degToRad(p.Latitude)
	declRad := degToRad(decl)
	sinElev := math.Sin(declRad)*math.Sin(latRad) + math.Cos(declRad)*math.Cos(latRad)*math.Cos(degToRad(hourAngle))
	// Rounding can push the sum a hair past ±1 at the poles.
	sinElev = math.Max(-1, math.Min(1, sinElev))

	return model.PositionResult{
		DayOfYear:         dayOfYear,
		DeclinationDeg:    decl,
		EquationOfTimeMin: eot,
		SolarTimeHours:    solarTime,
		HourAngleDeg:      hourAngle,
		ElevationDeg:      radToDeg(math.Asin(sinElev)),
	}
}
