package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCoordinate is returned when a latitude or longitude is out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidInstant is returned when a date/time is not a real calendar instant.
	ErrInvalidInstant = errors.New("invalid instant")
)

// GeoPoint is a location in decimal degrees.
// Latitude is in [-90, 90], longitude in [-180, 180]. East and north are positive.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewGeoPoint validates and returns a GeoPoint. Out-of-range values are
// rejected, never clamped.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: latitude, Longitude: longitude}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// MustGeoPoint is NewGeoPoint for constants known to be valid. It panics otherwise.
func MustGeoPoint(latitude, longitude float64) GeoPoint {
	p, err := NewGeoPoint(latitude, longitude)
	if err != nil {
		panic(err)
	}
	return p
}

func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90 degrees", ErrInvalidCoordinate, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180 degrees", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Latitude, p.Longitude)
}
