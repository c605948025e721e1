package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"
)

// Location is a named preset site.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
}

func (l Location) Point() (model.GeoPoint, error) {
	p, err := model.NewGeoPoint(l.Latitude, l.Longitude)
	if err != nil {
		return model.GeoPoint{}, fmt.Errorf("location %s: %w", l.ID, err)
	}
	return p, nil
}

// LocationList represents a collection of locations
type LocationList struct {
	UpdatedAt string     `json:"updated_at"` // ISO 8601 timestamp
	Locations []Location `json:"locations"`
}

// DefaultLocations is the built-in site list used when no locations file exists.
func DefaultLocations() *LocationList {
	return &LocationList{
		Locations: []Location{
			{ID: "kampala", Name: "Kampala", Latitude: 0.31, Longitude: 32.58, Country: "UG"},
			{ID: "nairobi", Name: "Nairobi", Latitude: -1.29, Longitude: 36.82, Country: "KE"},
			{ID: "cairo", Name: "Cairo", Latitude: 30.04, Longitude: 31.24, Country: "EG"},
			{ID: "cape-town", Name: "Cape Town", Latitude: -33.92, Longitude: 18.42, Country: "ZA"},
			{ID: "london", Name: "London", Latitude: 51.51, Longitude: -0.13, Country: "GB"},
			{ID: "tromso", Name: "Tromsø", Latitude: 69.65, Longitude: 18.96, Country: "NO"},
		},
	}
}

// LoadLocations loads locations from a JSON file
func LoadLocations(filePath string) (*LocationList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read locations file: %w", err)
	}

	var list LocationList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse locations file: %w", err)
	}
	for _, l := range list.Locations {
		if _, err := l.Point(); err != nil {
			return nil, fmt.Errorf("invalid locations file: %w", err)
		}
	}

	return &list, nil
}

// LoadLocationsOrDefault falls back to DefaultLocations when the file does not exist.
func LoadLocationsOrDefault(filePath string) (*LocationList, error) {
	list, err := LoadLocations(filePath)
	if err != nil {
		if _, statErr := os.Stat(filePath); os.IsNotExist(statErr) {
			return DefaultLocations(), nil
		}
		return nil, err
	}
	return list, nil
}

// SaveLocations saves locations to a JSON file
func SaveLocations(list *LocationList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal locations: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write locations file: %w", err)
	}

	return nil
}

// Find looks a location up by id, case-insensitively.
func (l *LocationList) Find(id string) (Location, bool) {
	for _, loc := range l.Locations {
		if strings.EqualFold(loc.ID, id) {
			return loc, true
		}
	}
	return Location{}, false
}

// Upsert replaces the location with the same id or appends it, keeping the
// list sorted by id (case-insensitively) and stamping UpdatedAt. A replaced
// location keeps its stored id. It reports whether a location was replaced.
func (l *LocationList) Upsert(loc Location, now time.Time) (bool, error) {
	if strings.TrimSpace(loc.ID) == "" {
		return false, fmt.Errorf("location id is required")
	}
	if _, err := loc.Point(); err != nil {
		return false, err
	}
	if loc.Name == "" {
		loc.Name = loc.ID
	}
	replaced := false
	for i := range l.Locations {
		if strings.EqualFold(l.Locations[i].ID, loc.ID) {
			loc.ID = l.Locations[i].ID
			l.Locations[i] = loc
			replaced = true
			break
		}
	}
	if !replaced {
		l.Locations = append(l.Locations, loc)
	}
	sort.Slice(l.Locations, func(i, j int) bool {
		return strings.ToLower(l.Locations[i].ID) < strings.ToLower(l.Locations[j].ID)
	})
	l.UpdatedAt = now.UTC().Format(time.RFC3339)
	return replaced, nil
}

// GetDefaultLocationsPath returns the default path for locations file
func GetDefaultLocationsPath() string {
	if path := os.Getenv("LOCATIONS_FILE"); path != "" {
		return path
	}
	return "./data/locations.json"
}
