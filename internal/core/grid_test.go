package core

import "testing"

func TestTorusWrap(t *testing.T) {
	tor := NewTorus(5, 4)
	cases := []struct {
		x, y   int
		wx, wy int
	}{
		{0, 0, 0, 0},
		{-1, 0, 4, 0},
		{5, 4, 0, 0},
		{-6, -9, 4, 3},
		{12, 7, 2, 3},
	}
	for _, c := range cases {
		x, y := tor.Wrap(c.x, c.y)
		if x != c.wx || y != c.wy {
			t.Errorf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}
}

func TestTorusNeighborsCounts(t *testing.T) {
	tor := NewTorus(5, 5)
	p := Point{0, 0}
	if got := len(tor.Neighbors(nil, p, true, false)); got != 8 {
		t.Fatalf("moore neighbors = %d, want 8", got)
	}
	if got := len(tor.Neighbors(nil, p, true, true)); got != 9 {
		t.Fatalf("moore neighbors with center = %d, want 9", got)
	}
	vn := tor.Neighbors(nil, p, false, false)
	if len(vn) != 4 {
		t.Fatalf("von neumann neighbors = %d, want 4", len(vn))
	}
	want := map[Point]bool{{0, 4}: true, {4, 0}: true, {1, 0}: true, {0, 1}: true}
	for _, n := range vn {
		if !want[n] {
			t.Fatalf("unexpected neighbor %v", n)
		}
	}
}

func TestTorusNeighborsCenterFirst(t *testing.T) {
	tor := NewTorus(5, 5)
	got := tor.Neighbors(nil, Point{2, 3}, false, true)
	if got[0] != (Point{2, 3}) {
		t.Fatalf("center should come first, got %v", got[0])
	}
}

func TestTorusNeighborsTinyLatticeDeduplicates(t *testing.T) {
	tor := NewTorus(1, 1)
	got := tor.Neighbors(nil, Point{0, 0}, true, true)
	if len(got) != 1 || got[0] != (Point{0, 0}) {
		t.Fatalf("1x1 lattice neighborhood = %v, want [(0,0)]", got)
	}

	tor = NewTorus(2, 1)
	got = tor.Neighbors(nil, Point{0, 0}, true, true)
	if len(got) != 2 {
		t.Fatalf("2x1 lattice neighborhood = %v, want 2 distinct cells", got)
	}
}

func TestTorusNeighborsUnwrappedCenterExcluded(t *testing.T) {
	tor := NewTorus(1, 4)
	got := tor.Neighbors(nil, Point{3, 1}, false, false)
	for _, n := range got {
		if n == (Point{0, 1}) {
			t.Fatalf("neighbors %v include the wrapped center", got)
		}
	}
	if len(got) != 2 {
		t.Fatalf("neighbors = %v, want the cells above and below", got)
	}
	withCenter := tor.Neighbors(nil, Point{-1, 5}, true, true)
	if withCenter[0] != (Point{0, 1}) {
		t.Fatalf("center = %v, want (0,1)", withCenter[0])
	}
}

func TestTorusContains(t *testing.T) {
	tor := NewTorus(3, 2)
	if !tor.Contains(2, 1) {
		t.Fatal("(2,1) should be inside 3x2")
	}
	if tor.Contains(3, 0) || tor.Contains(0, -1) {
		t.Fatal("out-of-range coordinates reported as inside")
	}
}
