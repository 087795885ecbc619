package wolfsheep

import (
	"testing"

	"wolfsheep/internal/core"
)

func TestCellsEncodeOccupancy(t *testing.T) {
	cfg := testConfig()
	m := mustModel(t, cfg)
	mustPlace(t)(m.PlaceSheep(Pos{X: 1, Y: 1}, 5))
	mustPlace(t)(m.PlaceWolf(Pos{X: 2, Y: 1}, 5))
	mustPlace(t)(m.PlaceSheep(Pos{X: 3, Y: 3}, 5))
	mustPlace(t)(m.PlaceWolf(Pos{X: 3, Y: 3}, 5))

	cells := m.Cells()
	if len(cells) != cfg.Width*cfg.Height {
		t.Fatalf("cells = %d, want %d", len(cells), cfg.Width*cfg.Height)
	}
	at := func(x, y int) uint8 { return cells[y*cfg.Width+x] }
	if at(1, 1)&displaySheepBit == 0 || at(1, 1)&displayWolfBit != 0 {
		t.Fatalf("sheep cell = %04b", at(1, 1))
	}
	if at(2, 1)&displayWolfBit == 0 || at(2, 1)&displaySheepBit != 0 {
		t.Fatalf("wolf cell = %04b", at(2, 1))
	}
	if at(3, 3)&(displaySheepBit|displayWolfBit) != displaySheepBit|displayWolfBit {
		t.Fatalf("shared cell = %04b", at(3, 3))
	}
	for i, v := range cells {
		if int(v) >= len(m.Palette()) {
			t.Fatalf("cell %d value %d outside palette", i, v)
		}
	}
}

func TestCellsGrassStage(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 1, 1
	cfg.GrassRegrowthTime = 10
	m := mustModel(t, cfg)
	a := grassAt(t, m, Pos{})

	set := func(grown bool, countdown int) {
		if a.FullyGrown && !grown {
			m.grown--
		} else if !a.FullyGrown && grown {
			m.grown++
		}
		a.FullyGrown, a.Countdown = grown, countdown
	}
	cases := []struct {
		grown     bool
		countdown int
		want      uint8
	}{
		{true, 0, 3},
		{false, 10, 0},
		{false, 8, 1},
		{false, 4, 2},
	}
	for _, tc := range cases {
		set(tc.grown, tc.countdown)
		if got := m.Cells()[0] & displayGrassMask; got != tc.want {
			t.Errorf("grown=%v countdown=%d: stage %d, want %d", tc.grown, tc.countdown, got, tc.want)
		}
	}
}

func TestPaletteDistinguishesOccupants(t *testing.T) {
	p := buildPalette()
	if len(p) != displayValues {
		t.Fatalf("palette size = %d", len(p))
	}
	bare := p[encodeDisplayValue(0, false, false)]
	sheep := p[encodeDisplayValue(0, true, false)]
	wolf := p[encodeDisplayValue(0, false, true)]
	grass := p[encodeDisplayValue(3, false, false)]
	if bare == sheep || bare == wolf || sheep == wolf || bare == grass {
		t.Fatal("palette entries should differ by occupant")
	}
	if wolf != toRGBA(wolfColor) {
		t.Fatalf("wolf color = %v", wolf)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	m := mustModel(t, testConfig())
	id := mustPlace(t)(m.PlaceSheep(Pos{X: 2, Y: 2}, 5))

	s := m.Snapshot()
	views := s.At(2, 2)
	if len(views) != 1 || views[0].ID != id {
		t.Fatalf("At(2,2) = %+v", views)
	}
	if p := views[0].Portrayal; p.Shape != "circle" || p.Color != "#483D8B" || p.Layer != 2 {
		t.Fatalf("sheep portrayal = %+v", p)
	}
	views[0].Energy = 100
	m.Kill(id)
	if got := s.At(2, 2); len(got) != 1 || got[0].Energy != 5 {
		t.Fatalf("snapshot changed after edits: %+v", got)
	}
	if wrapped := s.At(7, -3); len(wrapped) != 1 {
		t.Fatal("At should wrap coordinates")
	}
	if s.Sheep != 1 || len(s.Agents()) != 1 {
		t.Fatalf("snapshot counts: sheep=%d agents=%d", s.Sheep, len(s.Agents()))
	}
}

func TestGrassPortrayalScalesWithGrowth(t *testing.T) {
	m := mustModel(t, testConfig())
	grown := m.portray(&Agent{Breed: GrassPatch, FullyGrown: true})
	half := m.portray(&Agent{Breed: GrassPatch, Countdown: m.cfg.GrassRegrowthTime / 2})
	bare := m.portray(&Agent{Breed: GrassPatch, Countdown: m.cfg.GrassRegrowthTime})
	if grown.Scale != 0.9 || bare.Scale != 0 {
		t.Fatalf("scales grown=%v bare=%v", grown.Scale, bare.Scale)
	}
	if half.Scale <= bare.Scale || half.Scale >= grown.Scale {
		t.Fatalf("half grown scale %v should sit between", half.Scale)
	}
}

func TestParameterEditsApplyOnReset(t *testing.T) {
	m := mustModel(t, DefaultConfig())

	var (
		_ core.IntParameterSetter        = m
		_ core.FloatParameterSetter      = m
		_ core.BoolParameterSetter       = m
		_ core.ParameterControlsProvider = m
		_ core.StatusProvider            = m
		_ core.HistoryProvider           = m
	)

	if !m.SetIntParameter("initial_sheep", 10) {
		t.Fatal("initial_sheep edit rejected")
	}
	if !m.SetBoolParameter("grass", false) {
		t.Fatal("grass toggle rejected")
	}
	if !m.SetFloatParameter("wolf_reproduce", 0.1) {
		t.Fatal("wolf_reproduce edit rejected")
	}
	if m.BreedCount(Sheep) != 100 {
		t.Fatal("edits must not touch the running model")
	}
	if p, _ := m.Parameters().Lookup("initial_sheep"); p.Value != "100" {
		t.Fatalf("Parameters shows %q before reset", p.Value)
	}
	if p, _ := m.PendingParameters().Lookup("initial_sheep"); p.Value != "10" {
		t.Fatalf("PendingParameters shows %q", p.Value)
	}

	m.Reset(0)
	if m.BreedCount(Sheep) != 10 || m.Config().Grass || m.Config().WolfReproduce != 0.1 {
		t.Fatalf("edits not applied: %+v", m.Config())
	}
	if p, _ := m.Parameters().Lookup("grass"); p.Value != "false" {
		t.Fatalf("grass parameter = %q", p.Value)
	}
}

func TestParameterEditsRejected(t *testing.T) {
	m := mustModel(t, DefaultConfig())
	if m.SetIntParameter("width", 40) {
		t.Fatal("dimension edits should be rejected")
	}
	if m.SetFloatParameter("sheep_reproduce", 2) {
		t.Fatal("out of range probability accepted")
	}
	if m.SetIntParameter("lions", 3) {
		t.Fatal("unknown key accepted")
	}
	if m.PendingConfig() != m.Config() {
		t.Fatal("rejected edits must not be staged")
	}
}

func TestStatusAndHistory(t *testing.T) {
	m := mustModel(t, DefaultConfig())
	m.Run(3)
	lines := m.Status()
	if len(lines) != 3 || lines[0] != "Step 3" {
		t.Fatalf("status = %q", lines)
	}
	m.SetIntParameter("initial_wolves", 5)
	if lines := m.Status(); len(lines) != 4 {
		t.Fatalf("status should mention pending edits: %q", lines)
	}
	h := m.History()
	if len(h["Sheep"]) != 3 || len(h["Wolves"]) != 3 {
		t.Fatalf("history lengths = %d/%d", len(h["Sheep"]), len(h["Wolves"]))
	}
}

func TestRegisteredWithCore(t *testing.T) {
	sim, err := core.Build("wolfsheep", map[string]string{"w": "8", "h": "6", "initial_sheep": "3"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sim.Name() != "wolfsheep" || sim.Size() != (core.Size{W: 8, H: 6}) {
		t.Fatalf("sim = %s %+v", sim.Name(), sim.Size())
	}
	if _, err := core.Build("wolfsheep", map[string]string{"initial_sheep": "-1"}); err == nil {
		t.Fatal("invalid config should fail")
	}
}
