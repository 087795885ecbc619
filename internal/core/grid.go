package core

// Point addresses a single lattice cell.
type Point struct {
	X, Y int
}

// Offset is a relative step between lattice cells.
type Offset struct {
	DX, DY int
}

var (
	// MooreOffsets lists the 8 surrounding cells in row-major order.
	MooreOffsets = []Offset{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	// VonNeumannOffsets lists the 4 orthogonal cells in row-major order (N, W, E, S).
	VonNeumannOffsets = []Offset{
		{0, -1},
		{-1, 0}, {1, 0},
		{0, 1},
	}
)

// Torus describes a W×H lattice whose edges wrap around.
type Torus struct {
	W, H int
}

// NewTorus returns a lattice with the given dimensions. Non-positive sizes are
// raised to 1.
func NewTorus(w, h int) Torus {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Torus{W: w, H: h}
}

// Len returns the number of cells.
func (t Torus) Len() int { return t.W * t.H }

// Index returns the linear slice index for coordinates (x, y).
func (t Torus) Index(x, y int) int { return y*t.W + x }

// Contains reports whether (x, y) lies inside the lattice without wrapping.
func (t Torus) Contains(x, y int) bool {
	return x >= 0 && x < t.W && y >= 0 && y < t.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (t Torus) Wrap(x, y int) (int, int) {
	x = (x%t.W + t.W) % t.W
	y = (y%t.H + t.H) % t.H
	return x, y
}

// Neighbors appends the wrapped neighbors of p to dst. With includeCenter, p
// comes first. A cell reached twice through wrapping is only listed once.
func (t Torus) Neighbors(dst []Point, p Point, moore, includeCenter bool) []Point {
	start := len(dst)
	cx, cy := t.Wrap(p.X, p.Y)
	center := Point{cx, cy}
	if includeCenter {
		dst = append(dst, center)
	}
	offsets := VonNeumannOffsets
	if moore {
		offsets = MooreOffsets
	}
	for _, o := range offsets {
		x, y := t.Wrap(p.X+o.DX, p.Y+o.DY)
		n := Point{x, y}
		if containsPoint(dst[start:], n) {
			continue
		}
		if !includeCenter && n == center {
			continue
		}
		dst = append(dst, n)
	}
	return dst
}

func containsPoint(pts []Point, p Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}
