package wolfsheep

import (
	"errors"
	"slices"
	"testing"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 5
	cfg.Height = 5
	cfg.InitialSheep = 0
	cfg.InitialWolves = 0
	cfg.Grass = false
	cfg.SheepReproduce = 0
	cfg.WolfReproduce = 0
	return cfg
}

func mustModel(t *testing.T, cfg Config, opts ...Option) *Model {
	t.Helper()
	m, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func mustPlace(t *testing.T) func(ID, error) ID {
	t.Helper()
	return func(id ID, err error) ID {
		t.Helper()
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		return id
	}
}

func checkConsistency(t *testing.T, m *Model) {
	t.Helper()
	agents := m.Agents()
	sum := 0
	for _, b := range activationOrder {
		n := m.BreedCount(b)
		if n < 0 {
			t.Fatalf("negative count for %s", b)
		}
		sum += n
	}
	if sum != len(agents) {
		t.Fatalf("breed counts sum to %d, registry holds %d", sum, len(agents))
	}
	if m.grid.Len() != len(agents) {
		t.Fatalf("grid holds %d agents, registry %d", m.grid.Len(), len(agents))
	}
	for _, a := range agents {
		pos, ok := m.grid.PositionOf(a.ID)
		if !ok || pos != a.Pos {
			t.Fatalf("agent %d recorded at %v, grid has %v (present=%v)", a.ID, a.Pos, pos, ok)
		}
		if !slices.Contains(m.grid.cell(pos), a.ID) {
			t.Fatalf("agent %d missing from its cell", a.ID)
		}
	}
}

func TestNewStocksPopulation(t *testing.T) {
	cfg := DefaultConfig()
	m := mustModel(t, cfg)

	if got := m.BreedCount(Sheep); got != cfg.InitialSheep {
		t.Fatalf("sheep = %d, want %d", got, cfg.InitialSheep)
	}
	if got := m.BreedCount(Wolf); got != cfg.InitialWolves {
		t.Fatalf("wolves = %d, want %d", got, cfg.InitialWolves)
	}
	if got := m.BreedCount(GrassPatch); got != cfg.Width*cfg.Height {
		t.Fatalf("grass = %d, want one per cell", got)
	}
	for _, a := range m.Agents() {
		switch a.Breed {
		case Sheep:
			if a.Energy < 0 || a.Energy >= 2*cfg.SheepGainFromFood {
				t.Fatalf("sheep energy %d outside [0,%d)", a.Energy, 2*cfg.SheepGainFromFood)
			}
		case Wolf:
			if a.Energy < 0 || a.Energy >= 2*cfg.WolfGainFromFood {
				t.Fatalf("wolf energy %d outside [0,%d)", a.Energy, 2*cfg.WolfGainFromFood)
			}
		case GrassPatch:
			if a.FullyGrown && a.Countdown != 0 {
				t.Fatalf("grown patch with countdown %d", a.Countdown)
			}
			if !a.FullyGrown && (a.Countdown < 0 || a.Countdown > cfg.GrassRegrowthTime) {
				t.Fatalf("countdown %d outside [0,%d]", a.Countdown, cfg.GrassRegrowthTime)
			}
		}
	}
	checkConsistency(t, m)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.SheepReproduce = 1.5
	_, err := New(cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	var cerr *ConfigError
	if !errors.As(err, &cerr) || len(cerr.Problems) != 2 {
		t.Fatalf("expected two problems, got %v", err)
	}
}

func TestTickKeepsRegistryConsistent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	m := mustModel(t, cfg)
	for i := 0; i < 60; i++ {
		m.Tick()
		checkConsistency(t, m)
	}
	if m.Steps() != 60 {
		t.Fatalf("Steps = %d, want 60", m.Steps())
	}
}

func TestDeterministicForSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 2024

	var a, b Series
	m1 := mustModel(t, cfg, WithSink(&a))
	m2 := mustModel(t, cfg, WithSink(&b))
	m1.Run(150)
	m2.Run(150)

	if !slices.Equal(a.Sheep(), b.Sheep()) || !slices.Equal(a.Wolves(), b.Wolves()) {
		t.Fatal("identical seeds produced different population series")
	}
	if !slices.Equal(a.Grass(), b.Grass()) {
		t.Fatal("identical seeds produced different grass series")
	}

	cfg.Seed = 2025
	var c Series
	m3 := mustModel(t, cfg, WithSink(&c))
	m3.Run(150)
	if slices.Equal(a.Sheep(), c.Sheep()) && slices.Equal(a.Wolves(), c.Wolves()) {
		t.Fatal("different seeds should diverge")
	}
}

func TestResetReplaysRun(t *testing.T) {
	cfg := DefaultConfig()
	var series Series
	m := mustModel(t, cfg, WithSink(&series))
	m.Run(40)
	first := slices.Clone(series.Sheep())

	series.Reset()
	m.Reset(0)
	if m.Steps() != 0 {
		t.Fatalf("Steps after Reset = %d", m.Steps())
	}
	m.Run(40)
	if !slices.Equal(first, series.Sheep()) {
		t.Fatal("Reset(0) should replay the configured seed")
	}
}

func TestKillIsIdempotent(t *testing.T) {
	m := mustModel(t, testConfig())
	id := mustPlace(t)(m.PlaceSheep(Pos{X: 1, Y: 1}, 5))
	mustPlace(t)(m.PlaceSheep(Pos{X: 1, Y: 1}, 5))

	if !m.Kill(id) {
		t.Fatal("first Kill should remove the agent")
	}
	if m.Kill(id) {
		t.Fatal("second Kill must be a no-op")
	}
	if got := m.BreedCount(Sheep); got != 1 {
		t.Fatalf("sheep = %d, want exactly one decrement", got)
	}
	if _, ok := m.Agent(id); ok {
		t.Fatal("killed agent still reachable")
	}
	checkConsistency(t, m)
}

func TestIDsAreNeverReused(t *testing.T) {
	m := mustModel(t, testConfig())
	first := mustPlace(t)(m.PlaceSheep(Pos{}, 3))
	m.Kill(first)
	second := mustPlace(t)(m.PlaceSheep(Pos{}, 3))
	if second <= first {
		t.Fatalf("new ID %d should be greater than retired %d", second, first)
	}
}

func TestPlaceOutsideLattice(t *testing.T) {
	m := mustModel(t, testConfig())
	before := m.Population()
	for _, pos := range []Pos{{X: 5, Y: 0}, {X: 0, Y: 5}, {X: -1, Y: 2}} {
		if _, err := m.PlaceWolf(pos, 3); !errors.Is(err, ErrInvalidPosition) {
			t.Fatalf("PlaceWolf(%v) err = %v, want ErrInvalidPosition", pos, err)
		}
	}
	if m.Population() != before {
		t.Fatal("failed placements must not register agents")
	}
	checkConsistency(t, m)
}

func TestEmptyPopulationStaysEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialSheep = 0
	cfg.InitialWolves = 0
	cfg.SheepReproduce = 1
	cfg.WolfReproduce = 1
	m := mustModel(t, cfg)
	m.Run(50)
	if m.BreedCount(Sheep) != 0 || m.BreedCount(Wolf) != 0 {
		t.Fatalf("agents appeared from nothing: sheep=%d wolves=%d", m.BreedCount(Sheep), m.BreedCount(Wolf))
	}
}

func TestSinkReceivesOneSamplePerTick(t *testing.T) {
	var got []Sample
	m := mustModel(t, DefaultConfig(), WithSink(SinkFunc(func(s Sample) { got = append(got, s) })))
	m.Run(5)
	if len(got) != 5 {
		t.Fatalf("samples = %d, want 5", len(got))
	}
	for i, s := range got {
		if s.Step != i+1 {
			t.Fatalf("sample %d has step %d", i, s.Step)
		}
	}
	last := got[len(got)-1]
	if last.Sheep != m.BreedCount(Sheep) || last.Wolves != m.BreedCount(Wolf) || last.Grass != m.GrownGrass() {
		t.Fatalf("last sample %+v does not match model state", last)
	}
}

func TestGrownGrassCounterMatchesScan(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GrassRegrowthTime = 5
	m := mustModel(t, cfg)
	for i := 0; i < 30; i++ {
		m.Tick()
		grown := 0
		for _, a := range m.Agents() {
			if a.Breed == GrassPatch && a.FullyGrown {
				grown++
			}
		}
		if grown != m.GrownGrass() {
			t.Fatalf("tick %d: counter %d, scan %d", i, m.GrownGrass(), grown)
		}
	}
}

func TestStdDev(t *testing.T) {
	if StdDev(nil) != 0 || StdDev([]int{4}) != 0 {
		t.Fatal("fewer than two values should yield 0")
	}
	got := StdDev([]int{2, 4, 4, 4, 5, 5, 7, 9})
	want := 2.138089935299395
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("StdDev = %v, want %v", got, want)
	}
}

func TestSeriesLimit(t *testing.T) {
	s := Series{Limit: 3}
	for i := 1; i <= 5; i++ {
		s.Record(Sample{Step: i, Sheep: i})
	}
	if !slices.Equal(s.Sheep(), []int{3, 4, 5}) {
		t.Fatalf("limited series = %v", s.Sheep())
	}
}
