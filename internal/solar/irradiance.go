package solar

import (
	"math"

	"github.com/khristian7/Irradiation-Portal/internal/model"
)

// Constants
const (
	SolarConstant = 1367.0 // Solar constant in W/m², the mean solar energy at the top of Earth's atmosphere
)

// EccentricityFactor is Spencer's E0 correction for the Earth-Sun distance.
func EccentricityFactor(dayOfYear int) float64 {
	b := dayAngle(dayOfYear)
	return 1.000110 +
		0.034221*math.Cos(b) +
		0.001280*math.Sin(b) +
		0.000719*math.Cos(2*b) +
		0.000077*math.Sin(2*b)
}

// Irradiance returns the extraterrestrial irradiance on a horizontal plane
// at p and t in W/m², rounded to 2 decimals. It is 0 when the sun is at or
// below the horizon and never negative or NaN.
func Irradiance(p model.GeoPoint, t model.Instant) float64 {
	return FromPosition(Position(p, t))
}

// FromPosition evaluates the irradiance for an already computed position.
func FromPosition(pos model.PositionResult) float64 {
	// Written so that a NaN elevation also lands here.
	if !(pos.ElevationDeg > 0) {
		return 0.0
	}
	g := SolarConstant * EccentricityFactor(pos.DayOfYear) * math.Sin(degToRad(pos.ElevationDeg))
	if math.IsNaN(g) || math.IsInf(g, 0) || g < 0 {
		return 0.0
	}
	return roundCents(g)
}

// roundCents rounds to 2 decimal places, half away from zero.
func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}

// Calculator is bound to one (GeoPoint, Instant) pair and memoizes its day of year.
type Calculator struct {
	point     model.GeoPoint
	instant   model.Instant
	dayOfYear int
}

// NewCalculator validates p and returns a Calculator for p at t.
func NewCalculator(p model.GeoPoint, t model.Instant) (*Calculator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{point: p, instant: t, dayOfYear: DayOfYear(t)}, nil
}

func (c *Calculator) Point() model.GeoPoint  { return c.point }
func (c *Calculator) Instant() model.Instant { return c.instant }
func (c *Calculator) DayOfYear() int         { return c.dayOfYear }

func (c *Calculator) Position() model.PositionResult {
	return position(c.point, c.instant, c.dayOfYear)
}

func (c *Calculator) Irradiance() float64 {
	return FromPosition(c.Position())
}
