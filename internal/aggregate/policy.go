// Package aggregate resamples an hourly irradiance series into daily sums,
// monthly sums or a daily mean ± standard deviation band.
package aggregate

import (
	"fmt"

	"github.com/khristian7/Irradiation-Portal/internal/model"
)

// Policy selects how samples are grouped and which statistic is computed.
type Policy int

const (
	// DailySum groups by calendar day and sums.
	DailySum Policy = iota + 1
	// MonthlySum groups by calendar month and sums.
	MonthlySum
	// DailyBand groups by calendar day and computes mean and sample standard deviation.
	DailyBand
)

func (p Policy) String() string {
	switch p {
	case DailySum:
		return "daily_sum"
	case MonthlySum:
		return "monthly_sum"
	case DailyBand:
		return "daily_band"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// period returns the grouping key of a sample under p.
func (p Policy) period(i model.Instant) model.Period {
	if p == MonthlySum {
		return model.MonthPeriod(i)
	}
	return model.DayPeriod(i)
}

// PolicyFor maps a requested granularity onto a resampling policy.
// Hourly has no policy: the raw series is returned as is.
func PolicyFor(g model.Granularity) (Policy, bool) {
	switch g {
	case model.GranularityDaily:
		return DailySum, true
	case model.GranularityMonthly:
		return MonthlySum, true
	case model.GranularityDailyBand:
		return DailyBand, true
	default:
		return 0, false
	}
}
