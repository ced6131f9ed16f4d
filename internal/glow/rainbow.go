package glow

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"quantumtie/internal/domain"
)

// hueStep is the hue rotation per frame, as a fraction of the colour wheel.
const hueStep = 0.01

var initialHues = [domain.FrameSize]float64{
	0.00, 0.00, 0.06, 0.13, 0.20, 0.27, 0.34, 0.41,
	0.00, 0.06, 0.13, 0.21, 0.28, 0.35, 0.42, 0.49,
	0.07, 0.14, 0.21, 0.28, 0.35, 0.42, 0.50, 0.57,
	0.15, 0.22, 0.29, 0.36, 0.43, 0.50, 0.57, 0.64,
	0.22, 0.29, 0.36, 0.44, 0.51, 0.58, 0.65, 0.72,
	0.30, 0.37, 0.44, 0.51, 0.58, 0.66, 0.73, 0.80,
	0.38, 0.45, 0.52, 0.59, 0.66, 0.73, 0.80, 0.87,
	0.45, 0.52, 0.60, 0.67, 0.74, 0.81, 0.88, 0.95,
}

// Rainbow is a diagonal hue gradient that rotates one step per frame.
type Rainbow struct {
	hues [domain.FrameSize]float64
}

// NewRainbow returns the gradient at its starting position.
func NewRainbow() *Rainbow { return &Rainbow{hues: initialHues} }

// Hue returns the current hue of pixel i in [0, 1).
func (r *Rainbow) Hue(i int) float64 { return r.hues[i] }

// Step advances every hue and returns the frame with pixels outside mask
// turned off. A nil mask lights every pixel.
func (r *Rainbow) Step(mask []int) domain.Frame {
	var full domain.Frame
	for i, h := range r.hues {
		h = math.Mod(h+hueStep, 1)
		r.hues[i] = h
		full[i] = hsvPixel(h)
	}
	if mask == nil {
		return full
	}
	var f domain.Frame
	for _, i := range mask {
		f[i] = full[i]
	}
	return f
}

// hsvPixel converts a fully saturated, full brightness hue to 8-bit RGB.
// Channels are truncated, not rounded.
func hsvPixel(h float64) domain.Pixel {
	c := colorful.Hsv(h*360, 1, 1)
	return domain.Pixel{R: channel(c.R), G: channel(c.G), B: channel(c.B)}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}
