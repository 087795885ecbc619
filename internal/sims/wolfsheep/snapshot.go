package wolfsheep

import "slices"

// Portrayal carries the display attributes of one agent for a front-end.
type Portrayal struct {
	Shape  string // "circle" or "rect"
	Color  string
	Filled bool
	Layer  int
	// Radius applies to circles, Scale to rects (fraction of a cell side).
	Radius float64
	Scale  float64
}

// AgentView is a read-only copy of an agent plus its portrayal.
type AgentView struct {
	Agent
	Portrayal Portrayal
}

// Snapshot is a detached copy of the grid contents. Mutating it has no effect
// on the Model.
type Snapshot struct {
	Width, Height int
	Step          int
	Sheep, Wolves int
	GrownGrass    int

	cells [][]AgentView
}

// At returns the agents in cell (x, y), wrapped, in occupancy order.
func (s Snapshot) At(x, y int) []AgentView {
	if s.Width == 0 || s.Height == 0 {
		return nil
	}
	x = (x%s.Width + s.Width) % s.Width
	y = (y%s.Height + s.Height) % s.Height
	return slices.Clone(s.cells[y*s.Width+x])
}

// Agents returns every agent, row by row.
func (s Snapshot) Agents() []AgentView {
	var out []AgentView
	for _, cell := range s.cells {
		out = append(out, cell...)
	}
	return out
}

// Snapshot copies the current grid contents for rendering.
func (m *Model) Snapshot() Snapshot {
	w, h := m.grid.Width(), m.grid.Height()
	s := Snapshot{
		Width:      w,
		Height:     h,
		Step:       m.Steps(),
		Sheep:      m.BreedCount(Sheep),
		Wolves:     m.BreedCount(Wolf),
		GrownGrass: m.grown,
		cells:      make([][]AgentView, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ids := m.grid.cell(Pos{X: x, Y: y})
			if len(ids) == 0 {
				continue
			}
			views := make([]AgentView, 0, len(ids))
			for _, id := range ids {
				a, ok := m.agents.get(id)
				if !ok {
					continue
				}
				views = append(views, AgentView{Agent: *a, Portrayal: m.portray(a)})
			}
			s.cells[y*w+x] = views
		}
	}
	return s
}

const (
	colorWolf  = "#CC0000"
	colorSheep = "#483D8B"
	colorGrass = "#7FFF00"
)

func (m *Model) portray(a *Agent) Portrayal {
	switch a.Breed {
	case Sheep:
		return Portrayal{Shape: "circle", Color: colorSheep, Filled: true, Layer: 2, Radius: 0.3}
	case Wolf:
		return Portrayal{Shape: "circle", Color: colorWolf, Filled: true, Layer: 1, Radius: 0.5}
	default:
		if a.FullyGrown {
			return Portrayal{Shape: "rect", Color: colorGrass, Layer: 0, Scale: 0.9}
		}
		return Portrayal{Shape: "rect", Color: colorGrass, Layer: 0, Scale: 0.7 * m.growth(a)}
	}
}

// growth is how far a regrowing patch has come, in [0,1].
func (m *Model) growth(a *Agent) float64 {
	if a.FullyGrown || m.cfg.GrassRegrowthTime <= 0 {
		return 1
	}
	p := 1 - float64(a.Countdown)/float64(m.cfg.GrassRegrowthTime)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
