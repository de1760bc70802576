package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

var (
	colorAvailable = color.NRGBA{R: 0x2e, G: 0xb8, B: 0x4b, A: 0xff}
	colorIdle      = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// iconFor returns the tray icon: green while anyone is available, grey otherwise.
func iconFor(available int) []byte {
	if available > 0 {
		return availableIcon
	}
	return idleIcon
}

var (
	availableIcon = renderIcon(colorAvailable)
	idleIcon      = renderIcon(colorIdle)
)

// renderIcon draws a filled circle as a PNG.
func renderIcon(c color.Color) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize-1) / 2
	radius := float64(iconSize)/2 - 2
	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx, dy := float64(x)-center, float64(y)-center
			if dx*dx+dy*dy <= radius*radius {
				img.Set(x, y, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
