package shmoo

import (
	"image/color"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// colormapColors is the number of discrete colors a named colormap expands to.
const colormapColors = 64

// viridisHex mirrors the visual-map color ramp used by the HTML views.
var viridisHex = []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x48, 0x27, 0x77, 0xff},
	{0x3e, 0x49, 0x89, 0xff},
	{0x31, 0x68, 0x8e, 0xff},
	{0x26, 0x82, 0x8e, 0xff},
	{0x1f, 0x9e, 0x89, 0xff},
	{0x35, 0xb7, 0x79, 0xff},
	{0x6e, 0xce, 0x58, 0xff},
	{0xb5, 0xde, 0x2b, 0xff},
	{0xfd, 0xe7, 0x25, 0xff},
}

// listPalette adapts a fixed color list to palette.Palette.
type listPalette []color.Color

func (p listPalette) Colors() []color.Color { return p }

// Colormap resolves a colormap name to a palette. Unknown names fall back
// to the default diverging red-yellow-green scale.
func Colormap(name string) palette.Palette {
	switch name {
	case "RdYlGn", "":
		return redYellowGreen(colormapColors)
	case "viridis":
		out := make(listPalette, len(viridisHex))
		for i, c := range viridisHex {
			out[i] = c
		}
		return out
	case "blue-red":
		return moreland.SmoothBlueRed().Palette(colormapColors)
	case "kindlmann":
		return moreland.Kindlmann().Palette(colormapColors)
	case "black-body":
		return moreland.ExtendedBlackBody().Palette(colormapColors)
	case "heat":
		return palette.Heat(colormapColors, 1)
	case "rainbow":
		return palette.Rainbow(colormapColors, palette.Red, palette.Blue, 1, 1, 1)
	}
	return redYellowGreen(colormapColors)
}

// redYellowGreen builds the diverging red-yellow-green scale by sweeping
// hue from red to green at fixed saturation and lightness.
func redYellowGreen(n int) palette.Palette {
	out := make(listPalette, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n-1) / 3 // 0 (red) .. 1/3 (green)
		r, g, b := hslToRGB(hue, 0.85, 0.5)
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
