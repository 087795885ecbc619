package wolfsheep

import "fmt"

// activate dispatches one agent's step on its breed. It reports false for IDs
// that died earlier in the pass.
func (m *Model) activate(id ID) bool {
	a, ok := m.agents.get(id)
	if !ok {
		return false
	}
	switch a.Breed {
	case Sheep:
		m.stepSheep(a)
	case Wolf:
		m.stepWolf(a)
	case GrassPatch:
		m.stepGrass(a)
	}
	return true
}

func (m *Model) stepSheep(a *Agent) {
	m.randomMove(a)

	if m.cfg.Grass {
		a.Energy--
		grass := m.firstAt(a.Pos, GrassPatch, func(g *Agent) bool { return g.FullyGrown })
		if grass != nil {
			grass.FullyGrown = false
			m.grown--
			a.Energy += m.cfg.SheepGainFromFood
		}
		if a.Energy <= 0 {
			m.Kill(a.ID)
			return
		}
	}

	m.reproduce(a, m.cfg.SheepReproduce)
}

func (m *Model) stepWolf(a *Agent) {
	m.randomMove(a)
	a.Energy--

	// Removal is immediate, so a second wolf on this cell cannot find the same sheep.
	if prey := m.firstAt(a.Pos, Sheep, nil); prey != nil {
		m.Kill(prey.ID)
		a.Energy += m.cfg.WolfGainFromFood
	}
	if a.Energy <= 0 {
		m.Kill(a.ID)
		return
	}

	m.reproduce(a, m.cfg.WolfReproduce)
}

func (m *Model) stepGrass(a *Agent) {
	if a.FullyGrown {
		return
	}
	a.Countdown--
	if a.Countdown <= 0 {
		a.Countdown = m.cfg.GrassRegrowthTime
		a.FullyGrown = true
		m.grown++
	}
}

func (m *Model) randomMove(a *Agent) {
	candidates := m.grid.neighborhood(a.Pos, a.Moore)
	next := candidates[m.rng.IntN(len(candidates))]
	a.Pos = m.grid.Move(a.ID, next)
}

// reproduce always consumes one draw. On success the child takes floor(E/2)
// and the parent keeps the rest.
func (m *Model) reproduce(a *Agent, chance float64) {
	if m.rng.Float64() >= chance || a.Energy <= 1 {
		return
	}
	half := a.Energy / 2
	a.Energy -= half
	child := Agent{Breed: a.Breed, Pos: a.Pos, Energy: half, Moore: a.Moore}
	// a is invalid past this point: spawning may grow the arena.
	if _, err := m.spawn(child); err != nil {
		panic(fmt.Sprintf("wolfsheep: birth at parent cell failed: %v", err))
	}
}

// firstAt returns the first occupant of pos with the given breed that passes
// match (nil match accepts any).
func (m *Model) firstAt(pos Pos, b Breed, match func(*Agent) bool) *Agent {
	for _, id := range m.grid.cell(pos) {
		other, ok := m.agents.get(id)
		if !ok || other.Breed != b {
			continue
		}
		if match == nil || match(other) {
			return other
		}
	}
	return nil
}
