package search

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"golang.org/x/sync/errgroup"

	"wolfsheep/internal/logging"
	"wolfsheep/internal/sims/wolfsheep"
	pcore "wolfsheep/pkg/core"
)

// Options controls Tune.
type Options struct {
	// Samples is how many runs are averaged per candidate.
	Samples int
	// RandomTrials is how many random candidates precede coordinate descent.
	RandomTrials int
	// Passes caps the coordinate-descent passes. A pass that finds no
	// improvement ends the search early.
	Passes  int
	Workers int
	Limits  Limits
	// Seed drives candidate sampling. Zero uses the base config seed.
	Seed int64
	// OnTrial, if set, observes every evaluated candidate in evaluation
	// order. It is called from the goroutine running Tune.
	OnTrial func(Trial)
	Logger  *slog.Logger
}

func (o Options) normalized(base wolfsheep.Config) Options {
	if o.Samples <= 0 {
		o.Samples = 3
	}
	if o.RandomTrials < 0 {
		o.RandomTrials = 0
	}
	if o.Passes <= 0 {
		o.Passes = 1
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Seed == 0 {
		o.Seed = base.Seed
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	o.Limits = o.Limits.normalized()
	return o
}

// Trial is one evaluated candidate.
type Trial struct {
	Number int
	Params map[string]string
	Score  float64
}

// Record documents a single improvement found during the search.
type Record struct {
	Pass      int
	Parameter string
	Value     string
	Score     float64
	Params    map[string]string
}

// Result is the outcome of Tune.
type Result struct {
	Best   wolfsheep.Config
	Params map[string]string
	Score  float64
	Trace  []Record
	Trials int
}

// tuner carries the shared state of one Tune call.
type tuner struct {
	base   wolfsheep.Config
	space  Space
	opts   Options
	trials int
}

// Tune searches space for the parameters that keep both populations alive the
// longest. It scores the base configuration, then RandomTrials random
// candidates, then runs coordinate-descent passes over each dimension's grid,
// keeping any strictly better candidate. Candidates in a batch are evaluated in
// parallel but compared in a fixed order, so the result depends only on the
// inputs.
func Tune(ctx context.Context, base wolfsheep.Config, space Space, opts Options) (Result, error) {
	if err := base.Validate(); err != nil {
		return Result{}, err
	}
	if err := space.Validate(); err != nil {
		return Result{}, err
	}
	t := &tuner{base: base, space: space, opts: opts.normalized(base)}
	log := t.opts.Logger

	current := space.Params(base)
	scores, err := t.evaluate(ctx, []map[string]string{current})
	if err != nil {
		return Result{}, err
	}
	best := scores[0]
	trace := []Record{{Pass: 0, Parameter: "baseline", Score: best, Params: current}}
	log.Info("baseline scored", "score", best)

	rng := pcore.NewRNG(t.opts.Seed + 0x5f3759df)
	randoms := make([]map[string]string, t.opts.RandomTrials)
	for i := range randoms {
		candidate := maps.Clone(current)
		maps.Copy(candidate, space.Sample(rng))
		randoms[i] = candidate
	}
	scores, err = t.evaluate(ctx, randoms)
	if err != nil {
		return t.result(current, best, trace), err
	}
	for i, score := range scores {
		if score > best {
			best, current = score, randoms[i]
			trace = append(trace, Record{Pass: 0, Parameter: fmt.Sprintf("random#%d", i+1), Score: score, Params: current})
		}
	}
	log.Debug("random exploration done", "trials", len(randoms), "best", best)

	for pass := 1; pass <= t.opts.Passes; pass++ {
		improved := false
		for _, dim := range space.Dims {
			var values []string
			var candidates []map[string]string
			for _, v := range dim.Grid() {
				if v == current[dim.Key] {
					continue
				}
				c := maps.Clone(current)
				c[dim.Key] = v
				values = append(values, v)
				candidates = append(candidates, c)
			}
			scores, err := t.evaluate(ctx, candidates)
			if err != nil {
				return t.result(current, best, trace), err
			}
			for i, score := range scores {
				if score > best {
					best, current = score, candidates[i]
					improved = true
					trace = append(trace, Record{Pass: pass, Parameter: dim.Key, Value: values[i], Score: score, Params: current})
				}
			}
		}
		log.Info("pass complete", "pass", pass, "best", best, "improved", improved)
		if !improved {
			break
		}
	}
	return t.result(current, best, trace), nil
}

func (t *tuner) result(params map[string]string, score float64, trace []Record) Result {
	cfg, err := Apply(t.base, params)
	if err != nil {
		cfg = t.base
	}
	return Result{Best: cfg, Params: params, Score: score, Trace: trace, Trials: t.trials}
}

// evaluate scores candidates with at most Workers running at once. Candidates
// that do not form a valid configuration score zero.
func (t *tuner) evaluate(ctx context.Context, candidates []map[string]string) ([]float64, error) {
	scores := make([]float64, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.Workers)
	for i, params := range candidates {
		g.Go(func() error {
			cfg, err := Apply(t.base, params)
			if err != nil {
				return nil
			}
			score, err := Objective(gctx, cfg, t.opts.Samples, t.opts.Limits)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, params := range candidates {
		t.trials++
		if t.opts.OnTrial != nil {
			t.opts.OnTrial(Trial{Number: t.trials, Params: params, Score: scores[i]})
		}
	}
	return scores, nil
}
