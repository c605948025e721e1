package models

import (
	"github.com/khristian7/Irradiation-Portal/internal/analysis"
	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/export"
	"github.com/khristian7/Irradiation-Portal/internal/model"
)

// ModelResponse is the result of POST /api/v1/model.
// Exactly one of Series and Band is set.
type ModelResponse struct {
	ID          string            `json:"id"`
	Location    model.GeoPoint    `json:"location"`
	Granularity model.Granularity `json:"granularity"`
	Window      TimeWindow        `json:"window"`
	Count       int               `json:"count"`
	Series      []export.Row      `json:"series,omitempty"`
	Band        []export.BandRow  `json:"band,omitempty"`
}

// TimeWindow is the first and last hourly instant covered.
type TimeWindow struct {
	Start model.Instant `json:"start"`
	End   model.Instant `json:"end"`
}

// PositionResponse is the result of GET /api/v1/position
type PositionResponse struct {
	ID            string               `json:"id"`
	Location      model.GeoPoint       `json:"location"`
	Datetime      model.Instant        `json:"datetime"`
	Position      model.PositionResult `json:"position"`
	IrradianceWm2 float64              `json:"irradiance"`
}

// SummaryResponse is the result of GET /api/v1/summary
type SummaryResponse struct {
	ID       string           `json:"id"`
	Location model.GeoPoint   `json:"location"`
	Summary  analysis.Summary `json:"summary"`
}

// RankResponse represents the response from ranking sites
type RankResponse struct {
	Year     int       `json:"year"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked location
type Ranking struct {
	Rank            int     `json:"rank"`
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Country         string  `json:"country,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	InsolationKWhm2 float64 `json:"insolation_kwh_m2"`
	PeakWm2         float64 `json:"peak_wm2"`
	DaylightHours   int     `json:"daylight_hours"`
}

// LocationsResponse lists the preset sites
type LocationsResponse struct {
	Locations []data.Location `json:"locations"`
	UpdatedAt string          `json:"updated_at,omitempty"`
	Count     int             `json:"count"`
}

// GranularityInfo describes one supported granularity
type GranularityInfo struct {
	Name        model.Granularity `json:"name"`
	Description string            `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
