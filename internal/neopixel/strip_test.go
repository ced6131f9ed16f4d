package neopixel_test

import (
	"testing"

	"quantumtie/internal/domain"
	"quantumtie/internal/neopixel"
)

func TestLEDIndex_IsInjective(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < domain.FrameSize; i++ {
		led := neopixel.LEDIndex(i)
		if led < 0 || led >= neopixel.NumLEDs {
			t.Fatalf("pixel %d maps to %d", i, led)
		}
		if seen[led] {
			t.Fatalf("led %d used twice", led)
		}
		seen[led] = true
	}
	if neopixel.LEDIndex(0) != 32 || neopixel.LEDIndex(63) != 128 {
		t.Fatal("corner mapping changed")
	}
}

func TestEncode(t *testing.T) {
	var f domain.Frame
	f[0] = domain.Pixel{R: 0x80, G: 0x00, B: 0x01}
	buf := neopixel.Encode(f)

	if len(buf) != neopixel.NumLEDs*24+64 {
		t.Fatalf("len = %d", len(buf))
	}
	led := neopixel.LEDIndex(0) * 24
	r, g, b := buf[led:led+8], buf[led+8:led+16], buf[led+16:led+24]
	if r[0] != 0b11110000 || r[1] != 0b11000000 {
		t.Fatalf("red msb encoded as %08b %08b", r[0], r[1])
	}
	for _, v := range g {
		if v != 0b11000000 {
			t.Fatalf("green should be all zero bits")
		}
	}
	if b[7] != 0b11110000 || b[6] != 0b11000000 {
		t.Fatalf("blue lsb encoded as %08b", b[7])
	}
	// other LEDs are dark and the reset gap is zero
	if buf[0] != 0b11000000 || buf[len(buf)-1] != 0 {
		t.Fatal("unexpected padding")
	}
}
