package data

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/khristian7/Irradiation-Portal/internal/model"
)

type sampleRecord struct {
	Timestamp  model.Instant `json:"timestamp"`
	Irradiance float64       `json:"irradiance"`
}

// LoadSamplesJSON reads an hourly JSON export back into samples.
func LoadSamplesJSON(path string) ([]model.IrradianceSample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recs []sampleRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]model.IrradianceSample, 0, len(recs))
	for i, r := range recs {
		if r.Timestamp.IsZero() {
			return nil, fmt.Errorf("%s: record %d has no timestamp", path, i)
		}
		out = append(out, model.IrradianceSample{Instant: r.Timestamp, IrradianceWm2: r.Irradiance})
	}
	return out, nil
}
