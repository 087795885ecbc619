// Package wolfsheep simulates the Wolf Sheep Predation ecology: wolves and
// sheep roam a toroidal grid, sheep graze regrowing grass patches, wolves eat
// sheep, and both reproduce asexually by splitting their energy.
package wolfsheep

import (
	"context"
	"fmt"
	"log/slog"

	"wolfsheep/internal/core"
	"wolfsheep/internal/logging"
	pcore "wolfsheep/pkg/core"
)

// historyLimit bounds the in-model history kept for live overlays.
const historyLimit = 600

// Option customizes a Model at construction.
type Option func(*Model)

// WithSink registers a sink that receives a Sample after every tick.
func WithSink(s Sink) Option {
	return func(m *Model) {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
}

// WithLogger sets the logger for lifecycle events. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// Model owns the grid, the schedule, the agents and the random stream of one
// run. It is not safe for concurrent use; independent Models share nothing.
type Model struct {
	cfg Config
	// pending collects HUD edits, applied by the next Reset.
	pending Config

	rng    *pcore.RNG
	grid   *Grid
	sched  *schedule
	agents *registry

	grown   int
	sinks   []Sink
	history Series
	log     *slog.Logger
	display []uint8
}

// New validates cfg and stocks a fresh model seeded with cfg.Seed.
func New(cfg Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Model{
		cfg:     cfg,
		pending: cfg,
		history: Series{Limit: historyLimit},
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.build(cfg.Seed); err != nil {
		return nil, err
	}
	return m, nil
}

// build allocates empty state and stocks sheep, wolves and one grass patch per
// cell, in that order.
func (m *Model) build(seed int64) error {
	cfg := m.cfg
	m.rng = pcore.NewRNG(seed)
	m.grid = NewGrid(cfg.Width, cfg.Height)
	m.sched = newSchedule(m.rng)
	m.agents = newRegistry(cfg.Width*cfg.Height + cfg.InitialSheep + cfg.InitialWolves)
	m.grown = 0
	m.history.Reset()
	m.display = make([]uint8, cfg.Width*cfg.Height)

	for i := 0; i < cfg.InitialSheep; i++ {
		pos := m.randomPos()
		if _, err := m.PlaceSheep(pos, m.rng.IntN(2*cfg.SheepGainFromFood)); err != nil {
			return fmt.Errorf("stocking sheep: %w", err)
		}
	}
	for i := 0; i < cfg.InitialWolves; i++ {
		pos := m.randomPos()
		if _, err := m.PlaceWolf(pos, m.rng.IntN(2*cfg.WolfGainFromFood)); err != nil {
			return fmt.Errorf("stocking wolves: %w", err)
		}
	}
	for x := 0; x < cfg.Width; x++ {
		for y := 0; y < cfg.Height; y++ {
			grown := m.rng.Bool()
			countdown := 0
			if !grown {
				countdown = m.rng.IntN(cfg.GrassRegrowthTime + 1)
			}
			if _, err := m.PlaceGrass(Pos{X: x, Y: y}, grown, countdown); err != nil {
				return fmt.Errorf("stocking grass: %w", err)
			}
		}
	}

	m.log.Debug("model stocked",
		"width", cfg.Width, "height", cfg.Height,
		"sheep", m.BreedCount(Sheep), "wolves", m.BreedCount(Wolf),
		"grown_grass", m.grown, "seed", seed)
	return nil
}

func (m *Model) randomPos() Pos {
	x := m.rng.IntN(m.cfg.Width)
	y := m.rng.IntN(m.cfg.Height)
	return Pos{X: x, Y: y}
}

// Tick advances one step: every live agent acts once, then a Sample goes to
// the sinks.
func (m *Model) Tick() {
	sheepBefore, wolvesBefore := m.BreedCount(Sheep), m.BreedCount(Wolf)

	m.sched.step(m.activate)

	sample := Sample{
		Step:   m.sched.steps,
		Sheep:  m.BreedCount(Sheep),
		Wolves: m.BreedCount(Wolf),
		Grass:  m.grown,
	}
	if sheepBefore > 0 && sample.Sheep == 0 {
		m.log.Debug("sheep extinct", "step", sample.Step, "wolves", sample.Wolves)
	}
	if wolvesBefore > 0 && sample.Wolves == 0 {
		m.log.Debug("wolves extinct", "step", sample.Step, "sheep", sample.Sheep)
	}
	m.log.Log(context.Background(), logging.LevelTrace, "tick",
		"step", sample.Step, "sheep", sample.Sheep, "wolves", sample.Wolves, "grown_grass", sample.Grass)
	m.history.Record(sample)
	for _, s := range m.sinks {
		s.Record(sample)
	}
}

// Run calls Tick n times.
func (m *Model) Run(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// BreedCount returns the number of live agents of breed b.
func (m *Model) BreedCount(b Breed) int {
	if int(b) >= breedCount {
		return 0
	}
	return m.sched.count(b)
}

// Population returns the total number of live agents.
func (m *Model) Population() int { return m.sched.total() }

// GrownGrass returns the number of fully grown grass patches.
func (m *Model) GrownGrass() int { return m.grown }

// Steps returns how many ticks have run since the last build.
func (m *Model) Steps() int { return m.sched.steps }

// Config returns the parameters of the current run.
func (m *Model) Config() Config { return m.cfg }

// PlaceSheep adds a sheep at pos using the run's connectivity mode.
func (m *Model) PlaceSheep(pos Pos, energy int) (ID, error) {
	return m.spawn(Agent{Breed: Sheep, Pos: pos, Energy: energy, Moore: m.cfg.Moore})
}

// PlaceWolf adds a wolf at pos using the run's connectivity mode.
func (m *Model) PlaceWolf(pos Pos, energy int) (ID, error) {
	return m.spawn(Agent{Breed: Wolf, Pos: pos, Energy: energy, Moore: m.cfg.Moore})
}

// PlaceGrass adds a grass patch at pos.
func (m *Model) PlaceGrass(pos Pos, fullyGrown bool, countdown int) (ID, error) {
	return m.spawn(Agent{Breed: GrassPatch, Pos: pos, FullyGrown: fullyGrown, Countdown: countdown})
}

// spawn registers a new agent on the grid and the schedule. Agents added while
// their breed is being stepped first act on the next tick.
func (m *Model) spawn(a Agent) (ID, error) {
	id := m.agents.create(a)
	if err := m.grid.Place(id, a.Pos); err != nil {
		m.agents.release(id)
		return 0, err
	}
	m.sched.add(a.Breed, id)
	if a.Breed == GrassPatch && a.FullyGrown {
		m.grown++
	}
	return id, nil
}

// Kill removes an agent from the grid, the schedule and the registry at once.
// Killing an agent that is already gone is a no-op and reports false.
func (m *Model) Kill(id ID) bool {
	a, ok := m.agents.get(id)
	if !ok {
		return false
	}
	if a.Breed == GrassPatch && a.FullyGrown {
		m.grown--
	}
	m.grid.Remove(id)
	m.sched.remove(a.Breed, id)
	m.agents.release(id)
	return true
}

// Agent returns a copy of the agent with the given ID.
func (m *Model) Agent(id ID) (Agent, bool) {
	a, ok := m.agents.get(id)
	if !ok {
		return Agent{}, false
	}
	return *a, true
}

// Agents returns copies of every live agent in registry order.
func (m *Model) Agents() []Agent {
	out := make([]Agent, 0, m.agents.len())
	m.agents.each(func(a *Agent) { out = append(out, *a) })
	return out
}

// AgentsAt returns copies of the agents at pos in occupancy order.
func (m *Model) AgentsAt(pos Pos) []Agent {
	ids := m.grid.cell(pos)
	out := make([]Agent, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.agents.get(id); ok {
			out = append(out, *a)
		}
	}
	return out
}

// Name returns the simulation identifier.
func (m *Model) Name() string { return "wolfsheep" }

// Size reports the grid dimensions.
func (m *Model) Size() core.Size { return core.Size{W: m.cfg.Width, H: m.cfg.Height} }

// Step advances one tick; it satisfies core.Sim.
func (m *Model) Step() { m.Tick() }

// Reset rebuilds the run from scratch with any pending parameter edits. A zero
// seed reuses the configured seed.
func (m *Model) Reset(seed int64) {
	m.cfg = m.pending
	effective := seed
	if effective == 0 {
		effective = m.cfg.Seed
	}
	if err := m.build(effective); err != nil {
		m.log.Error("reset failed", "err", err)
	}
}

func init() {
	core.Register("wolfsheep", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return New(c)
	})
}
