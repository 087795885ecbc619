// Package search drives headless wolfsheep runs to score and tune parameter
// sets. A run is scored by how long both populations coexist inside the
// configured bounds, plus how much they oscillate while doing so.
package search

import (
	"context"
	"fmt"

	"wolfsheep/internal/sims/wolfsheep"
	pcore "wolfsheep/pkg/core"
)

// cancelCheckInterval is how many ticks run between context checks.
const cancelCheckInterval = 1024

// Limits bounds a collapse run.
type Limits struct {
	// Lower ends the run once either population drops to or below it.
	Lower int `yaml:"lower"`
	// Upper ends the run once either population exceeds it.
	Upper int `yaml:"upper"`
	// Timeout caps the number of ticks.
	Timeout int `yaml:"timeout"`
}

// DefaultLimits stops at extinction, at a 400 agent explosion, or after
// 100000 ticks.
func DefaultLimits() Limits {
	return Limits{Lower: 0, Upper: 400, Timeout: 100_000}
}

func (l Limits) normalized() Limits {
	if l.Timeout <= 0 {
		l.Timeout = DefaultLimits().Timeout
	}
	if l.Upper <= 0 {
		l.Upper = DefaultLimits().Upper
	}
	return l
}

// Outcome describes a finished collapse run.
type Outcome struct {
	Steps  int
	Score  float64
	Reason string
	// Series holds the initial population and one sample per tick.
	Series wolfsheep.Series
}

// Stop reasons reported in Outcome.Reason.
const (
	ReasonExtinct   = "extinct"
	ReasonExploded  = "exploded"
	ReasonTimeout   = "timeout"
	ReasonCancelled = "cancelled"
)

// RunUntilCollapse ticks a fresh model built from cfg until a population
// leaves the bounds in lim or the timeout is reached. The score is the number
// of ticks run plus the sample standard deviations of both populations; the
// deviations only count once more than one tick ran and cover the per-tick
// samples, not the stocked state.
func RunUntilCollapse(ctx context.Context, cfg wolfsheep.Config, lim Limits) (Outcome, error) {
	lim = lim.normalized()
	out := Outcome{Reason: ReasonTimeout}
	model, err := wolfsheep.New(cfg, wolfsheep.WithSink(&out.Series))
	if err != nil {
		return out, fmt.Errorf("building model: %w", err)
	}
	for out.Steps < lim.Timeout {
		if out.Steps%cancelCheckInterval == 0 && ctx.Err() != nil {
			out.Reason = ReasonCancelled
			return out, ctx.Err()
		}
		model.Tick()
		out.Steps++
		sheep := model.BreedCount(wolfsheep.Sheep)
		wolves := model.BreedCount(wolfsheep.Wolf)
		if min(sheep, wolves) <= lim.Lower {
			out.Reason = ReasonExtinct
			break
		}
		if max(sheep, wolves) > lim.Upper {
			out.Reason = ReasonExploded
			break
		}
	}

	out.Score = float64(out.Steps)
	if out.Steps > 1 {
		out.Score += wolfsheep.StdDev(out.Series.Wolves()) + wolfsheep.StdDev(out.Series.Sheep())
	}
	return out, nil
}

// Objective returns the mean collapse score over samples runs of cfg. Run i
// uses the i-th seed drawn from a stream seeded with cfg.Seed, so the value is
// reproducible for a given configuration.
func Objective(ctx context.Context, cfg wolfsheep.Config, samples int, lim Limits) (float64, error) {
	if samples <= 0 {
		samples = 1
	}
	seeds := pcore.NewRNG(cfg.Seed)
	total := 0.0
	for i := 0; i < samples; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		run := cfg
		run.Seed = seeds.Derive()
		out, err := RunUntilCollapse(ctx, run, lim)
		if err != nil {
			return 0, err
		}
		total += out.Score
	}
	return total / float64(samples), nil
}
