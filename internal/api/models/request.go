package models

// ModelRequest is the body of POST /api/v1/model and /api/v1/export.
// Field names follow the portal's form fields.
type ModelRequest struct {
	// Mode is "date" (range + granularity) or "year" (daily band over whole years).
	// Empty means "date" when startDate is set, otherwise "year".
	Mode      string   `json:"mode,omitempty"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`

	StartDate string `json:"startDate,omitempty"` // YYYY-MM-DD or YYYY-MM-DDTHH:MM[:SS]
	EndDate   string `json:"endDate,omitempty"`   // date-only values include the whole day

	StartYear int `json:"startyear,omitempty"`
	EndYear   int `json:"endyear,omitempty"`

	TimeGranularity string `json:"timeGranularity,omitempty"` // Hourly, Daily, Monthly, DailyBand
}

// ExportQuery holds the query parameters of POST /api/v1/export
type ExportQuery struct {
	Format string `form:"format,omitempty"` // CSV (default), JSON, PARQUET
	Gzip   bool   `form:"gzip,omitempty"`
}

// PositionQuery holds the query parameters of GET /api/v1/position
type PositionQuery struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
	Datetime  string   `form:"datetime" binding:"required"`
}

// SummaryQuery holds the query parameters of GET /api/v1/summary
type SummaryQuery struct {
	Latitude  *float64 `form:"latitude" binding:"required"`
	Longitude *float64 `form:"longitude" binding:"required"`
	StartDate string   `form:"startDate" binding:"required"`
	EndDate   string   `form:"endDate" binding:"required"`
}

// RankQuery holds the query parameters of GET /api/v1/rank
type RankQuery struct {
	Year  int `form:"year,omitempty"`  // default: current year
	Limit int `form:"limit,omitempty"` // 0 = all
}
