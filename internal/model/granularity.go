package model

import (
	"fmt"
	"strings"
)

// Granularity is the time resolution a caller asks for.
// Keep these values stable; they are accepted verbatim by the API and CLI.
type Granularity string

const (
	GranularityHourly    Granularity = "Hourly"
	GranularityDaily     Granularity = "Daily"
	GranularityMonthly   Granularity = "Monthly"
	GranularityDailyBand Granularity = "DailyBand"
)

// Granularities lists every supported value in display order.
var Granularities = []Granularity{
	GranularityHourly,
	GranularityDaily,
	GranularityMonthly,
	GranularityDailyBand,
}

// ParseGranularity is case-insensitive and also accepts "band" for DailyBand.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hourly":
		return GranularityHourly, nil
	case "daily":
		return GranularityDaily, nil
	case "monthly":
		return GranularityMonthly, nil
	case "dailyband", "daily_band", "band":
		return GranularityDailyBand, nil
	default:
		return "", fmt.Errorf("invalid granularity %q, expected one of Hourly, Daily, Monthly, DailyBand", s)
	}
}

func (g Granularity) Description() string {
	switch g {
	case GranularityHourly:
		return "Raw hourly extraterrestrial irradiance (W/m²)"
	case GranularityDaily:
		return "Sum of hourly values per calendar day"
	case GranularityMonthly:
		return "Sum of hourly values per calendar month"
	case GranularityDailyBand:
		return "Daily mean ± sample standard deviation of hourly values"
	default:
		return ""
	}
}
