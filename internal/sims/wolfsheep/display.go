package wolfsheep

import "image/color"

const (
	displayGrassMask = 0x03
	displaySheepBit  = 0x04
	displayWolfBit   = 0x08
	displayValues    = 16
)

// grassStage buckets a patch into bare (0), sprouting (1), half grown (2) or
// fully grown (3).
type grassStage uint8

var wolfSheepPalette = buildPalette()

// Palette exposes the color palette used for rendering Cells.
func (m *Model) Palette() []color.RGBA {
	return wolfSheepPalette
}

// Cells encodes every cell as a palette index: grass stage in the low bits,
// then sheep and wolf presence flags.
func (m *Model) Cells() []uint8 {
	w, h := m.grid.Width(), m.grid.Height()
	if len(m.display) != w*h {
		m.display = make([]uint8, w*h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var stage grassStage
			sheep, wolf := false, false
			for _, id := range m.grid.cell(Pos{X: x, Y: y}) {
				a, ok := m.agents.get(id)
				if !ok {
					continue
				}
				switch a.Breed {
				case Sheep:
					sheep = true
				case Wolf:
					wolf = true
				case GrassPatch:
					stage = m.stageOf(a)
				}
			}
			m.display[y*w+x] = encodeDisplayValue(stage, sheep, wolf)
		}
	}
	return m.display
}

func (m *Model) stageOf(a *Agent) grassStage {
	if a.FullyGrown {
		return 3
	}
	p := m.growth(a)
	switch {
	case p >= 0.5:
		return 2
	case p > 0:
		return 1
	default:
		return 0
	}
}

func encodeDisplayValue(stage grassStage, sheep, wolf bool) uint8 {
	value := uint8(stage) & displayGrassMask
	if sheep {
		value |= displaySheepBit
	}
	if wolf {
		value |= displayWolfBit
	}
	return value
}

func buildPalette() []color.RGBA {
	palette := make([]color.RGBA, displayValues)
	for i := range palette {
		stage := grassStage(i & displayGrassMask)
		sheep := i&displaySheepBit != 0
		wolf := i&displayWolfBit != 0
		palette[i] = toRGBA(paletteColorFor(stage, sheep, wolf))
	}
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

var (
	soilColor  = color.NRGBA{R: 70, G: 52, B: 32, A: 255}
	grassColor = color.NRGBA{R: 0x7F, G: 0xFF, B: 0x00, A: 255}
	sheepColor = color.NRGBA{R: 0x48, G: 0x3D, B: 0x8B, A: 255}
	wolfColor  = color.NRGBA{R: 0xCC, G: 0x00, B: 0x00, A: 255}
)

func paletteColorFor(stage grassStage, sheep, wolf bool) color.NRGBA {
	ground := blendColors(soilColor, grassColor, float64(stage)/3*0.8)
	switch {
	case wolf && sheep:
		return blendColors(sheepColor, wolfColor, 0.7)
	case wolf:
		return wolfColor
	case sheep:
		return blendColors(ground, sheepColor, 0.85)
	default:
		return ground
	}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	br, bg, bb, ba := float64(base.R), float64(base.G), float64(base.B), float64(base.A)
	or, og, ob, oa := float64(overlay.R), float64(overlay.G), float64(overlay.B), float64(overlay.A)
	w := overlayWeight
	inv := 1 - w
	return color.NRGBA{
		R: uint8(br*inv + or*w + 0.5),
		G: uint8(bg*inv + og*w + 0.5),
		B: uint8(bb*inv + ob*w + 0.5),
		A: uint8(ba*inv + oa*w + 0.5),
	}
}
