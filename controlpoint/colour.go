package controlpoint

import "image/color"

// Palette holds the named colours control points are tinted with on timeline visualisations.
type Palette struct {
	Lime1   color.RGBA
	Orange1 color.RGBA
	Purple  color.RGBA
	Pink    color.RGBA
	Gray    color.RGBA
}

var defaultPalette = Palette{
	Lime1:   color.RGBA{R: 0xb2, G: 0xff, B: 0x66, A: 0xff},
	Orange1: color.RGBA{R: 0xff, G: 0xd9, B: 0x66, A: 0xff},
	Purple:  color.RGBA{R: 0xaa, G: 0x66, B: 0xff, A: 0xff},
	Pink:    color.RGBA{R: 0xff, G: 0x66, B: 0xab, A: 0xff},
	Gray:    color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff},
}

func DefaultPalette() *Palette {
	p := defaultPalette

	return &p
}

func paletteOrDefault(p *Palette) *Palette {
	if p == nil {
		return &defaultPalette
	}

	return p
}
