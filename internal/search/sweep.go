package search

import (
	"context"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"wolfsheep/internal/sims/wolfsheep"
)

// SweepOptions controls Sweep.
type SweepOptions struct {
	Samples int
	Workers int
	Limits  Limits
	// OnTrial observes each finished candidate in completion order.
	OnTrial func(Trial)
}

// Combinations expands the space into the cartesian product of every
// dimension's grid, last dimension varying fastest.
func (s Space) Combinations() []map[string]string {
	sets := []map[string]string{{}}
	for _, d := range s.Dims {
		grid := d.Grid()
		next := make([]map[string]string, 0, len(sets)*len(grid))
		for _, set := range sets {
			for _, v := range grid {
				c := maps.Clone(set)
				c[d.Key] = v
				next = append(next, c)
			}
		}
		sets = next
	}
	return sets
}

// Sweep scores every combination of the space's grids on a pool of workers and
// returns the trials best first. Ties keep combination order. Combinations
// that do not form a valid configuration are skipped.
func Sweep(ctx context.Context, base wolfsheep.Config, space Space, opts SweepOptions) ([]Trial, error) {
	if err := space.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Samples <= 0 {
		opts.Samples = 1
	}
	opts.Limits = opts.Limits.normalized()

	type job struct {
		n   int
		cfg wolfsheep.Config
		set map[string]string
	}
	var queued []job
	for i, set := range space.Combinations() {
		cfg, err := Apply(base, set)
		if err != nil {
			continue
		}
		queued = append(queued, job{n: i + 1, cfg: cfg, set: set})
	}

	jobs := make(chan job)
	results := make(chan Trial)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < opts.Workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				score, err := Objective(gctx, j.cfg, opts.Samples, opts.Limits)
				if err != nil {
					return err
				}
				select {
				case results <- Trial{Number: j.n, Params: j.set, Score: score}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for _, j := range queued {
			select {
			case jobs <- j:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(results)
	}()

	all := make([]Trial, 0, len(queued))
	for res := range results {
		all = append(all, res)
		if opts.OnTrial != nil {
			opts.OnTrial(res)
		}
	}
	if err := <-done; err != nil {
		return nil, err
	}

	slices.SortStableFunc(all, func(a, b Trial) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return a.Number - b.Number
		}
	})
	return all, nil
}
