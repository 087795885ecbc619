package results

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/uuid"

	"wolfsheep/internal/sims/wolfsheep"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSamples() []wolfsheep.Sample {
	return []wolfsheep.Sample{
		{Step: 1, Sheep: 100, Wolves: 50, Grass: 200},
		{Step: 2, Sheep: 96, Wolves: 51, Grass: 190},
		{Step: 3, Sheep: 90, Wolves: 53, Grass: 185},
	}
}

func TestSaveAndLoadRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cfg := wolfsheep.DefaultConfig()
	cfg.InitialWolves = 12
	cfg.Moore = false

	id, err := s.SaveRun(ctx, cfg, testSamples())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveRun returned a nil ID")
	}

	run, err := s.LoadRun(ctx, id)
	if err != nil {
		t.Fatalf("LoadRun: %v", err)
	}
	if run.Config != cfg {
		t.Fatalf("config = %+v, want %+v", run.Config, cfg)
	}
	if !slices.Equal(run.Samples, testSamples()) {
		t.Fatalf("samples = %+v", run.Samples)
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestRunsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	a, err := s.SaveRun(ctx, wolfsheep.DefaultConfig(), testSamples())
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.SaveRun(ctx, wolfsheep.DefaultConfig(), testSamples()[:1])
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two runs share an ID")
	}
	series, err := s.LoadSeries(ctx, b)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("series of second run = %d samples", len(series))
	}
}

func TestLoadMissingRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.LoadRun(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadRun err = %v, want ErrNotFound", err)
	}
	if _, err := s.LoadSeries(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadSeries err = %v, want ErrNotFound", err)
	}
}

func TestEmptyRunHasEmptySeries(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	id, err := s.SaveRun(ctx, wolfsheep.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	series, err := s.LoadSeries(ctx, id)
	if err != nil || len(series) != 0 {
		t.Fatalf("LoadSeries = %v, %v", series, err)
	}
}

func TestBestTrials(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	trials := []Trial{
		{Study: "a", Number: 1, Params: map[string]string{"moore": "true"}, Score: 12},
		{Study: "a", Number: 2, Params: map[string]string{"moore": "false"}, Score: 40},
		{Study: "a", Number: 3, Params: map[string]string{"initial_sheep": "7"}, Score: 40},
		{Study: "a", Number: 4, Params: map[string]string{}, Score: 3},
		{Study: "b", Number: 1, Params: map[string]string{}, Score: 1000},
	}
	for _, tr := range trials {
		if err := s.SaveTrial(ctx, tr); err != nil {
			t.Fatalf("SaveTrial: %v", err)
		}
	}

	best, err := s.BestTrials(ctx, "a", 3)
	if err != nil {
		t.Fatalf("BestTrials: %v", err)
	}
	var numbers []int
	for _, tr := range best {
		numbers = append(numbers, tr.Number)
	}
	if !slices.Equal(numbers, []int{2, 3, 1}) {
		t.Fatalf("order = %v, want [2 3 1]", numbers)
	}
	if best[1].Params["initial_sheep"] != "7" {
		t.Fatalf("params = %v", best[1].Params)
	}
}

func TestSaveTrialReplaces(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if err := s.SaveTrial(ctx, Trial{Study: "a", Number: 1, Score: 5}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveTrial(ctx, Trial{Study: "a", Number: 1, Score: 9}); err != nil {
		t.Fatal(err)
	}
	best, err := s.BestTrials(ctx, "a", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != 1 || best[0].Score != 9 {
		t.Fatalf("trials = %+v", best)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	id, err := s.SaveRun(ctx, wolfsheep.DefaultConfig(), testSamples())
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadRun(ctx, id); err != nil {
		t.Fatalf("LoadRun after reopen: %v", err)
	}
}
