package search

import (
	"context"
	"errors"
	"math"
	"testing"

	"wolfsheep/internal/sims/wolfsheep"
)

func smallConfig() wolfsheep.Config {
	cfg := wolfsheep.DefaultConfig()
	cfg.Width, cfg.Height = 10, 10
	cfg.InitialSheep, cfg.InitialWolves = 20, 5
	return cfg
}

func TestRunUntilCollapseExtinction(t *testing.T) {
	cfg := smallConfig()
	cfg.InitialWolves = 0

	out, err := RunUntilCollapse(context.Background(), cfg, DefaultLimits())
	if err != nil {
		t.Fatalf("RunUntilCollapse: %v", err)
	}
	if out.Reason != ReasonExtinct || out.Steps != 1 {
		t.Fatalf("outcome = %s after %d steps, want extinct after 1", out.Reason, out.Steps)
	}
	if out.Score != 1 {
		t.Fatalf("score = %v, deviations must not count for a single tick", out.Score)
	}
	if out.Series.Len() != 1 {
		t.Fatalf("series = %d samples, want 1", out.Series.Len())
	}
}

func TestRunUntilCollapseTimeoutScore(t *testing.T) {
	cfg := smallConfig()
	lim := Limits{Lower: -1, Upper: 1 << 20, Timeout: 25}

	out, err := RunUntilCollapse(context.Background(), cfg, lim)
	if err != nil {
		t.Fatalf("RunUntilCollapse: %v", err)
	}
	if out.Reason != ReasonTimeout || out.Steps != 25 {
		t.Fatalf("outcome = %s after %d steps", out.Reason, out.Steps)
	}
	if out.Series.Len() != out.Steps {
		t.Fatalf("series = %d samples for %d steps", out.Series.Len(), out.Steps)
	}
	if first := out.Series.Samples()[0]; first.Step != 1 {
		t.Fatalf("first sample is step %d, want 1", first.Step)
	}
	want := 25 + wolfsheep.StdDev(out.Series.Wolves()) + wolfsheep.StdDev(out.Series.Sheep())
	if math.Abs(out.Score-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", out.Score, want)
	}
}

func TestRunUntilCollapseExplosion(t *testing.T) {
	cfg := smallConfig()
	cfg.Grass = false
	cfg.SheepReproduce, cfg.WolfReproduce = 0, 0
	cfg.InitialSheep, cfg.InitialWolves = 10, 1
	lim := Limits{Lower: -1, Upper: 5, Timeout: 100}

	out, err := RunUntilCollapse(context.Background(), cfg, lim)
	if err != nil {
		t.Fatalf("RunUntilCollapse: %v", err)
	}
	if out.Reason != ReasonExploded || out.Steps != 1 {
		t.Fatalf("outcome = %s after %d steps, want exploded after 1", out.Reason, out.Steps)
	}
}

func TestRunUntilCollapseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := RunUntilCollapse(ctx, smallConfig(), DefaultLimits())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if out.Reason != ReasonCancelled {
		t.Fatalf("reason = %s", out.Reason)
	}
}

func TestRunUntilCollapseInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = 0
	if _, err := RunUntilCollapse(context.Background(), cfg, DefaultLimits()); !errors.Is(err, wolfsheep.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestObjectiveDeterministic(t *testing.T) {
	cfg := smallConfig()
	lim := Limits{Lower: 0, Upper: 400, Timeout: 200}
	a, err := Objective(context.Background(), cfg, 3, lim)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	b, err := Objective(context.Background(), cfg, 3, lim)
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	if a != b {
		t.Fatalf("objective not reproducible: %v vs %v", a, b)
	}
	if a < 1 {
		t.Fatalf("objective = %v, every run lasts at least one tick", a)
	}
}

func TestObjectiveMeanOfRuns(t *testing.T) {
	cfg := smallConfig()
	cfg.InitialWolves = 0
	score, err := Objective(context.Background(), cfg, 4, DefaultLimits())
	if err != nil {
		t.Fatalf("Objective: %v", err)
	}
	if score != 1 {
		t.Fatalf("score = %v, want 1 for runs that collapse on the first tick", score)
	}
}
