package wolfsheep

import (
	"fmt"
	"slices"

	"wolfsheep/internal/core"
)

// Pos is a lattice cell coordinate.
type Pos = core.Point

// Grid is a toroidal lattice where every cell holds an ordered multiset of
// agent IDs. Cell contents keep insertion order so that scans are
// reproducible for a fixed seed.
type Grid struct {
	torus core.Torus
	cells [][]ID
	where map[ID]Pos
	nbuf  []Pos
}

// NewGrid allocates an empty w×h grid.
func NewGrid(w, h int) *Grid {
	t := core.NewTorus(w, h)
	return &Grid{
		torus: t,
		cells: make([][]ID, t.Len()),
		where: make(map[ID]Pos),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.torus.W }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.torus.H }

// Place inserts id at pos. Positions must already lie inside the lattice.
func (g *Grid) Place(id ID, pos Pos) error {
	if !g.torus.Contains(pos.X, pos.Y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrInvalidPosition, pos.X, pos.Y, g.torus.W, g.torus.H)
	}
	if _, ok := g.where[id]; ok {
		g.Remove(id)
	}
	g.insert(id, pos)
	return nil
}

// Move relocates id to the wrapped pos, appending it to the target cell.
// Unknown IDs are ignored.
func (g *Grid) Move(id ID, pos Pos) Pos {
	old, ok := g.where[id]
	if !ok {
		return pos
	}
	x, y := g.torus.Wrap(pos.X, pos.Y)
	pos = Pos{X: x, Y: y}
	// Staying put still moves id to the back of its cell.
	g.detach(id, old)
	g.insert(id, pos)
	return pos
}

// Remove deletes id from its cell. Removing an absent ID is a no-op.
func (g *Grid) Remove(id ID) bool {
	pos, ok := g.where[id]
	if !ok {
		return false
	}
	g.detach(id, pos)
	delete(g.where, id)
	return true
}

// PositionOf returns the cell currently holding id.
func (g *Grid) PositionOf(id ID) (Pos, bool) {
	pos, ok := g.where[id]
	return pos, ok
}

// Neighborhood returns the wrapped 8 (moore) or 4 neighbors of pos, with pos
// first when includeCenter is set. The returned slice is freshly allocated.
func (g *Grid) Neighborhood(pos Pos, moore, includeCenter bool) []Pos {
	return g.torus.Neighbors(nil, pos, moore, includeCenter)
}

// neighborhood is the allocation-free variant used by behaviors. The result
// is overwritten by the next call.
func (g *Grid) neighborhood(pos Pos, moore bool) []Pos {
	g.nbuf = g.torus.Neighbors(g.nbuf[:0], pos, moore, true)
	return g.nbuf
}

// Occupants returns a copy of the IDs at pos in insertion order.
func (g *Grid) Occupants(pos Pos) []ID {
	return slices.Clone(g.cell(pos))
}

// cell exposes the live occupant slice at pos for read-only scans.
func (g *Grid) cell(pos Pos) []ID {
	x, y := g.torus.Wrap(pos.X, pos.Y)
	return g.cells[g.torus.Index(x, y)]
}

// Len reports how many agents are on the grid.
func (g *Grid) Len() int { return len(g.where) }

func (g *Grid) insert(id ID, pos Pos) {
	idx := g.torus.Index(pos.X, pos.Y)
	g.cells[idx] = append(g.cells[idx], id)
	g.where[id] = pos
}

func (g *Grid) detach(id ID, pos Pos) {
	idx := g.torus.Index(pos.X, pos.Y)
	cell := g.cells[idx]
	if i := slices.Index(cell, id); i >= 0 {
		g.cells[idx] = slices.Delete(cell, i, i+1)
	}
}
