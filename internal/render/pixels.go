package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// PaletteProvider is implemented by sims whose cells index a color palette.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// grayscale is used for sims that expose no palette: zero is black, anything
// else white.
var grayscale = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

// paletteFor returns the sim's palette, or grayscale when it has none.
func paletteFor(sim any) []color.RGBA {
	if p, ok := sim.(PaletteProvider); ok {
		if pal := p.Palette(); len(pal) > 0 {
			return pal
		}
	}
	return grayscale
}
