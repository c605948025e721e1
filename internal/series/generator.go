// Package series produces hourly extraterrestrial irradiance series over a date range.
package series

import (
	"context"
	"iter"
	"runtime"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/solar"

	"golang.org/x/sync/errgroup"
)

// Step is the fixed spacing between samples.
const Step = time.Hour

const stepSeconds = int64(Step / time.Second)

// ctxCheckEvery bounds how often parallel workers look at ctx.
const ctxCheckEvery = 512

// Len is the number of samples Generate returns for [start, end].
// It is 0 when end is before start.
func Len(start, end model.Instant) int {
	if end.Before(start) {
		return 0
	}
	// Counted in Unix seconds; a time.Duration overflows past about 292 years.
	return int((end.Unix()-start.Unix())/stepSeconds) + 1
}

func sampleAt(p model.GeoPoint, start model.Instant, i int) model.IrradianceSample {
	at := model.InstantOf(time.Unix(start.Unix()+int64(i)*stepSeconds, 0).UTC())
	return model.IrradianceSample{
		Instant:       at,
		IrradianceWm2: solar.Irradiance(p, at),
	}
}

// Generate returns the hourly samples from start to end inclusive.
// end is included only when it lies a whole number of hours after start.
// An end before start yields an empty series.
func Generate(p model.GeoPoint, start, end model.Instant) []model.IrradianceSample {
	n := Len(start, end)
	out := make([]model.IrradianceSample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, sampleAt(p, start, i))
	}
	return out
}

// All is the lazy form of Generate. Consumers can stop at any point.
func All(p model.GeoPoint, start, end model.Instant) iter.Seq[model.IrradianceSample] {
	return func(yield func(model.IrradianceSample) bool) {
		n := Len(start, end)
		for i := 0; i < n; i++ {
			if !yield(sampleAt(p, start, i)) {
				return
			}
		}
	}
}

// GenerateParallel computes the same series as Generate with up to workers
// goroutines (GOMAXPROCS when workers <= 0). Each worker owns a contiguous
// slice of the output, so ordering is preserved without locks.
func GenerateParallel(ctx context.Context, p model.GeoPoint, start, end model.Instant, workers int) ([]model.IrradianceSample, error) {
	n := Len(start, end)
	out := make([]model.IrradianceSample, n)
	if n == 0 {
		return out, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := (n + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				out[i] = sampleAt(p, start, i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
