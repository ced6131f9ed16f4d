package types

// Pixel is one RGB LED value.
type Pixel struct {
	R, G, B uint8
}

// Common colours used by the renderer.
var (
	Black  = Pixel{}
	White  = Pixel{255, 255, 255}
	Red    = Pixel{255, 0, 0}
	Blue   = Pixel{0, 0, 255}
	Purple = Pixel{75, 0, 75}
)

// FrameSize is the number of pixels on the 8x8 matrix.
const FrameSize = 64

// Frame is a full 8x8 image in row-major order (index = y*8 + x).
type Frame [FrameSize]Pixel

// Fill returns a frame with every pixel set to p.
func Fill(p Pixel) Frame {
	var f Frame
	for i := range f {
		f[i] = p
	}
	return f
}

// Rotate returns f as it must be written to a device mounted at angle
// degrees (0, 90, 180 or 270). Other angles return f unchanged.
//
// The mapping matches the Sense HAT library: logical pixel (r, c) lands on
// the physical offset of the numpy rot90 pixel map for that angle.
func (f Frame) Rotate(angle int) Frame {
	var out Frame
	for i, p := range f {
		r, c := i/8, i%8
		var dst int
		switch angle {
		case 90:
			dst = c*8 + (7 - r)
		case 180:
			dst = (7-r)*8 + (7 - c)
		case 270:
			dst = (7-c)*8 + r
		default:
			dst = i
		}
		out[dst] = p
	}
	return out
}
