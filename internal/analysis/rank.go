package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/khristian7/Irradiation-Portal/internal/data"
	"github.com/khristian7/Irradiation-Portal/internal/model"
	"github.com/khristian7/Irradiation-Portal/internal/series"

	"golang.org/x/sync/errgroup"
)

type RankedSite struct {
	Rank     int           `json:"rank"`
	Location data.Location `json:"location"`
	Summary  Summary       `json:"summary"`
}

// RankSites summarizes every site over [start, end] and sorts them by
// insolation, highest first. Ties keep id order. At most workers sites are
// computed at once; workers <= 0 means no limit.
func RankSites(ctx context.Context, sites []data.Location, start, end model.Instant, workers int) ([]RankedSite, error) {
	out := make([]RankedSite, len(sites))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, site := range sites {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := site.Point()
			if err != nil {
				return err
			}
			samples, err := series.GenerateParallel(ctx, p, start, end, 1)
			if err != nil {
				return fmt.Errorf("site %s: %w", site.ID, err)
			}
			out[i] = RankedSite{Location: site, Summary: Summarize(samples)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Summary.InsolationKWhm2 != out[j].Summary.InsolationKWhm2 {
			return out[i].Summary.InsolationKWhm2 > out[j].Summary.InsolationKWhm2
		}
		return out[i].Location.ID < out[j].Location.ID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}
