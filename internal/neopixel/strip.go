package neopixel

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"quantumtie/internal/domain"
)

const (
	// NumLEDs is the length of the chain.
	NumLEDs = 192
	// SpeedHz is the SPI clock: eight SPI bits per WS2812 bit at 800 kHz.
	SpeedHz = 6_400_000

	bit0 = 0b11000000
	bit1 = 0b11110000

	// 80µs of low level at SpeedHz.
	resetBytes = 64

	spiIOCWrMaxSpeedHz = 0x40046b04
)

// ledIndex maps logical pixel i to its position on the chain.
var ledIndex = [domain.FrameSize]int{
	32, 39, 40, 47, 48, 55, 56, 63,
	33, 38, 41, 46, 49, 54, 57, 62,
	34, 37, 42, 45, 50, 53, 58, 61,
	35, 36, 43, 44, 51, 52, 59, 60,
	156, 155, 148, 147, 140, 139, 132, 131,
	157, 154, 149, 146, 141, 138, 133, 130,
	158, 153, 150, 145, 142, 137, 134, 129,
	159, 152, 151, 144, 143, 136, 135, 128,
}

// LEDIndex returns the chain position of logical pixel i.
func LEDIndex(i int) int { return ledIndex[i] }

// Strip writes frames to the panel chain.
type Strip struct {
	mu sync.Mutex
	f  *os.File
}

// Open opens the spidev device (normally /dev/spidev0.0) and sets its clock.
func Open(dev string) (*Strip, error) {
	f, err := os.OpenFile(dev, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}
	if err := unix.IoctlSetPointerInt(int(f.Fd()), spiIOCWrMaxSpeedHz, SpeedHz); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("set spi speed: %w", err)
	}
	return &Strip{f: f}, nil
}

// ShowResult writes the frame to the chain. It satisfies domain.ResultSink.
func (s *Strip) ShowResult(f domain.Frame, _ domain.Pattern) error {
	return s.SetPixels(f)
}

// SetPixels writes one frame.
func (s *Strip) SetPixels(f domain.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.f.Write(Encode(f))
	return err
}

// Clear turns the chain off.
func (s *Strip) Clear() error { return s.SetPixels(domain.Frame{}) }

// Close closes the device.
func (s *Strip) Close() error { return s.f.Close() }

// Encode builds the SPI byte stream for f, RGB order, one byte per bit,
// most significant bit first, followed by the reset gap.
func Encode(f domain.Frame) []byte {
	var leds [NumLEDs]domain.Pixel
	for i, p := range f {
		leds[ledIndex[i]] = p
	}

	buf := make([]byte, 0, NumLEDs*3*8+resetBytes)
	for _, p := range leds {
		for _, c := range [3]uint8{p.R, p.G, p.B} {
			for bit := 7; bit >= 0; bit-- {
				if c&(1<<bit) != 0 {
					buf = append(buf, bit1)
				} else {
					buf = append(buf, bit0)
				}
			}
		}
	}
	return append(buf, make([]byte, resetBytes)...)
}

var _ domain.ResultSink = (*Strip)(nil)
