package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/aggregate"
	"github.com/khristian7/Irradiation-Portal/internal/config"
	"github.com/khristian7/Irradiation-Portal/internal/export"
	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"
	"github.com/khristian7/Irradiation-Portal/internal/solar"
)

// Demo:
// - Generate one day of hourly irradiance for the configured default site
// - Resample it into a daily sum and a daily band
// - Print a few reference positions to show how the pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional, supplies the default site)")
	dateStr := flag.String("date", "2023-03-21", "Calendar day to profile (YYYY-MM-DD)")
	outCSV := flag.String("out", "", "Optional path to write the hourly CSV (e.g. results/profile.csv)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	p, err := model.NewGeoPoint(cfg.Defaults.Latitude, cfg.Defaults.Longitude)
	if err != nil {
		panic(err)
	}
	day, err := model.ParseInstant(*dateStr)
	if err != nil {
		panic(err)
	}
	day = day.Date()

	samples := series.Generate(p, day, day.EndOfDay())
	fmt.Printf("Hourly extraterrestrial irradiance at %s on %s\n\n", p, day.Time().Format("2006-01-02"))
	for _, s := range samples {
		bar := strings.Repeat("#", int(s.IrradianceWm2/40))
		fmt.Printf("%s  %8.2f W/m²  %s\n", s.Instant.Time().Format("15:04"), s.IrradianceWm2, bar)
	}

	daily, err := aggregate.Daily(samples)
	if err != nil {
		panic(err)
	}
	band, err := aggregate.Band(samples)
	if err != nil {
		panic(err)
	}
	fmt.Printf("\nDaily sum=%.2f W/m²  (%.3f kWh/m²)\n", daily[0].AggregateWm2, daily[0].AggregateWm2/1000)
	fmt.Printf("Daily band mean=%.2f std=%.2f  [%.2f, %.2f]\n", band[0].Mean, band[0].Std, band[0].Lower, band[0].Upper)

	fmt.Printf("\nReference instants:\n")
	refs := []struct {
		name string
		p    model.GeoPoint
		t    model.Instant
	}{
		{"equator, equinox solar noon", model.MustGeoPoint(0.31, 32.58), model.MustInstant(2023, time.March, 21, 10, 7, 30)},
		{"equator, equinox midnight", model.MustGeoPoint(0.31, 32.58), model.MustInstant(2023, time.March, 21, 0, 0, 0)},
		{"arctic circle, winter solstice", model.MustGeoPoint(66.5, 0), model.MustInstant(2023, time.December, 21, 11, 49, 8)},
		{"southern summer noon", model.MustGeoPoint(-33.92, 18.42), model.MustInstant(2024, time.January, 15, 12, 0, 0)},
	}
	for _, r := range refs {
		pos := solar.Position(r.p, r.t)
		fmt.Printf("  %-32s %s %s  doy=%3d  elev=%7.3f°  G=%8.2f W/m²\n",
			r.name, r.p, r.t, pos.DayOfYear, pos.ElevationDeg, solar.FromPosition(pos))
	}

	if *outCSV != "" {
		if err := export.WriteFile(*outCSV, export.FormatCSV, export.HourlyRows(samples), export.Options{}); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}
}
