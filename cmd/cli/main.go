package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/aggregate"
	"github.com/khristian7/Irradiation-Portal/internal/analysis"
	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/export"
	"github.com/khristian7/Irradiation-Portal/internal/log"
	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"
	"github.com/khristian7/Irradiation-Portal/internal/solar"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	debug, _ := strconv.ParseBool(os.Getenv("LOG_DEBUG"))
	if err := log.Init(debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	var err error
	switch os.Args[1] {
	case "series":
		err = cmdSeries(os.Args[2:])
	case "position":
		err = cmdPosition(os.Args[2:])
	case "aggregate":
		err = cmdAggregate(os.Args[2:])
	case "rank":
		err = cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli series --lat 0.31 --lon 32.58 --start 2024-01-01 --end 2024-01-31 --granularity Daily --format CSV --out results/kampala.csv")
	fmt.Println("  cli position --lat 0.31 --lon 32.58 --at 2023-03-21T10:07:30")
	fmt.Println("  cli aggregate --in results/hourly.json --granularity Monthly")
	fmt.Println("  cli rank --locations data/locations.json --year 2024")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - instants are local civil time at the given longitude, without a zone")
	fmt.Println("  - a date-only --end includes the whole day (through 23:00)")
	fmt.Println("  - exit status 2 means invalid input")
}

// exitCode is 2 for invalid coordinates, instants and flags, 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, model.ErrInvalidCoordinate) || errors.Is(err, model.ErrInvalidInstant) || errors.Is(err, errUsage) {
		return 2
	}
	return 1
}

var errUsage = errors.New("invalid arguments")

type outputFlags struct {
	format *string
	gzip   *bool
	out    *string
}

func addOutputFlags(fs *flag.FlagSet) outputFlags {
	return outputFlags{
		format: fs.String("format", "CSV", "Output format: CSV, JSON or PARQUET"),
		gzip:   fs.Bool("gzip", false, "Gzip-compress the output"),
		out:    fs.String("out", "", "Output path (default: stdout)"),
	}
}

func writeRows[T export.Record](o outputFlags, rows []T) error {
	format, err := export.ParseFormat(*o.format)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	opts := export.Options{Gzip: *o.gzip}
	if *o.out == "" {
		return export.Write(os.Stdout, format, rows, opts)
	}
	if err := export.WriteFile(*o.out, format, rows, opts); err != nil {
		return err
	}
	log.Infof("Wrote %d rows to %s", len(rows), *o.out)
	return nil
}

func cmdSeries(args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)
	lat := fs.Float64("lat", 0.31, "Latitude in decimal degrees")
	lon := fs.Float64("lon", 32.58, "Longitude in decimal degrees, east positive")
	startStr := fs.String("start", "", "Start instant (YYYY-MM-DD[THH:MM[:SS]])")
	endStr := fs.String("end", "", "End instant, inclusive")
	gran := fs.String("granularity", "Hourly", "Hourly, Daily, Monthly or DailyBand")
	workers := fs.Int("workers", 0, "Parallel workers (0=GOMAXPROCS)")
	out := addOutputFlags(fs)
	_ = fs.Parse(args)

	p, err := model.NewGeoPoint(*lat, *lon)
	if err != nil {
		return err
	}
	start, end, err := parseRange(*startStr, *endStr)
	if err != nil {
		return err
	}
	g, err := model.ParseGranularity(*gran)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	began := time.Now()
	samples, err := series.GenerateParallel(context.Background(), p, start, end, *workers)
	if err != nil {
		return err
	}
	log.Debugf("generated %d samples for %s in %s", len(samples), p, time.Since(began))

	if g == model.GranularityHourly {
		return writeRows(out, export.HourlyRows(samples))
	}
	return writeAggregate(out, samples, g)
}

func cmdPosition(args []string) error {
	fs := flag.NewFlagSet("position", flag.ExitOnError)
	lat := fs.Float64("lat", 0.31, "Latitude in decimal degrees")
	lon := fs.Float64("lon", 32.58, "Longitude in decimal degrees, east positive")
	at := fs.String("at", "", "Instant (YYYY-MM-DD[THH:MM[:SS]])")
	_ = fs.Parse(args)

	p, err := model.NewGeoPoint(*lat, *lon)
	if err != nil {
		return err
	}
	t, err := model.ParseInstant(*at)
	if err != nil {
		return err
	}
	calc, err := solar.NewCalculator(p, t)
	if err != nil {
		return err
	}
	pos := calc.Position()

	fmt.Printf("location        %s\n", p)
	fmt.Printf("instant         %s\n", t)
	fmt.Printf("day of year     %d\n", pos.DayOfYear)
	fmt.Printf("declination     %.4f°\n", pos.DeclinationDeg)
	fmt.Printf("eq. of time     %.4f min\n", pos.EquationOfTimeMin)
	fmt.Printf("solar time      %.4f h\n", pos.SolarTimeHours)
	fmt.Printf("hour angle      %.4f°\n", pos.HourAngleDeg)
	fmt.Printf("elevation       %.4f°\n", pos.ElevationDeg)
	fmt.Printf("irradiance      %.2f W/m²\n", calc.Irradiance())
	return nil
}

func cmdAggregate(args []string) error {
	fs := flag.NewFlagSet("aggregate", flag.ExitOnError)
	in := fs.String("in", "", "Hourly JSON file written by `cli series --format JSON`")
	gran := fs.String("granularity", "Daily", "Daily, Monthly or DailyBand")
	out := addOutputFlags(fs)
	_ = fs.Parse(args)

	if *in == "" {
		return fmt.Errorf("%w: --in is required", errUsage)
	}
	g, err := model.ParseGranularity(*gran)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	samples, err := data.LoadSamplesJSON(*in)
	if err != nil {
		return err
	}
	if g == model.GranularityHourly {
		return writeRows(out, export.HourlyRows(samples))
	}
	return writeAggregate(out, samples, g)
}

func writeAggregate(out outputFlags, samples []model.IrradianceSample, g model.Granularity) error {
	policy, ok := aggregate.PolicyFor(g)
	if !ok {
		return fmt.Errorf("%w: granularity %s cannot be aggregated", errUsage, g)
	}
	res, err := aggregate.Resample(samples, policy)
	if err != nil {
		return err
	}
	rows, bands := export.ResultRows(res)
	if policy == aggregate.DailyBand {
		return writeRows(out, bands)
	}
	return writeRows(out, rows)
}

func cmdRank(args []string) error {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	locPath := fs.String("locations", data.GetDefaultLocationsPath(), "Locations JSON file (built-in list when missing)")
	year := fs.Int("year", time.Now().Year(), "Calendar year to rank over")
	workers := fs.Int("workers", 0, "Sites computed at once (0=all)")
	_ = fs.Parse(args)

	list, err := data.LoadLocationsOrDefault(*locPath)
	if err != nil {
		return err
	}
	start, err := model.NewInstant(*year, time.January, 1, 0, 0, 0)
	if err != nil {
		return err
	}
	end := model.MustInstant(*year, time.December, 31, 23, 0, 0)

	ranked, err := analysis.RankSites(context.Background(), list.Locations, start, end, *workers)
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-16s %-8s %-9s %-9s %-12s %-10s %-8s\n", "rank", "site", "country", "lat", "lon", "kWh/m²/yr", "peak W/m²", "daylight")
	for _, r := range ranked {
		fmt.Printf(
			"%-4d %-16s %-8s %-9.3f %-9.3f %-12.2f %-10.2f %-8d\n",
			r.Rank,
			r.Location.Name,
			r.Location.Country,
			r.Location.Latitude,
			r.Location.Longitude,
			r.Summary.InsolationKWhm2,
			r.Summary.PeakWm2,
			r.Summary.DaylightHours,
		)
	}
	return nil
}

func parseRange(startStr, endStr string) (model.Instant, model.Instant, error) {
	if startStr == "" || endStr == "" {
		return model.Instant{}, model.Instant{}, fmt.Errorf("%w: --start and --end are required", errUsage)
	}
	start, err := model.ParseInstant(startStr)
	if err != nil {
		return model.Instant{}, model.Instant{}, err
	}
	end, err := model.ParseInstant(endStr)
	if err != nil {
		return model.Instant{}, model.Instant{}, err
	}
	if model.IsDateOnly(endStr) {
		end = end.EndOfDay()
	}
	if end.Before(start) {
		return model.Instant{}, model.Instant{}, fmt.Errorf("%w: --end is before --start", errUsage)
	}
	return start, end, nil
}
