package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/log"
)

func main() {
	var (
		outputPath = flag.String("output", "", "Output file path (default: ./data/locations.json)")
		seedFile   = flag.String("seed", "", "Path to existing locations file to use as seed")
		id         = flag.String("id", "", "Site id to add or replace, e.g. cape-town")
		name       = flag.String("name", "", "Display name (default: derived from id)")
		lat        = flag.Float64("lat", math.NaN(), "Latitude in decimal degrees")
		lon        = flag.Float64("lon", math.NaN(), "Longitude in decimal degrees, east positive")
		country    = flag.String("country", "", "ISO country code")
		defaults   = flag.Bool("defaults", false, "Start from the built-in site list instead of the seed file")
	)
	flag.Parse()

	if err := log.Init(false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *outputPath == "" {
		*outputPath = data.GetDefaultLocationsPath()
	}

	list := loadSeed(*seedFile, *outputPath, *defaults)
	fmt.Printf("Loaded %d existing locations\n", len(list.Locations))

	if *id != "" {
		loc := data.Location{
			ID:        strings.ToLower(strings.TrimSpace(*id)),
			Name:      inferLocationName(*id, *name),
			Latitude:  *lat,
			Longitude: *lon,
			Country:   strings.ToUpper(*country),
		}
		replaced, err := list.Upsert(loc, time.Now())
		if err != nil {
			log.Fatalf("Failed to update location: %v", err)
		}
		verb := "Added"
		if replaced {
			verb = "Updated"
		}
		fmt.Printf("  ✓ %s: %s (%s) at (%.4f, %.4f)\n", verb, loc.ID, loc.Name, loc.Latitude, loc.Longitude)
	} else {
		list.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := data.SaveLocations(list, *outputPath); err != nil {
		log.Fatalf("Failed to save locations: %v", err)
	}

	fmt.Printf("Saved %d locations to %s\n", len(list.Locations), *outputPath)
}

// loadSeed prefers the explicit seed file, then the output file itself, then the built-in list.
func loadSeed(seedFile, outputPath string, useDefaults bool) *data.LocationList {
	if useDefaults {
		return data.DefaultLocations()
	}
	path := seedFile
	if path == "" {
		path = outputPath
	}
	list, err := data.LoadLocationsOrDefault(path)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", path, err)
	}
	return list
}

// inferLocationName turns an id like "cape-town" into "Cape Town" unless a name is given.
func inferLocationName(locID, existingName string) string {
	if existingName != "" {
		return existingName
	}
	words := strings.FieldsFunc(locID, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	if len(words) == 0 {
		return locID
	}
	return strings.Join(words, " ")
}
