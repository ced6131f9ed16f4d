package sensehat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"quantumtie/internal/domain"
)

const (
	fbName      = "RPi-Sense FB"
	sysGraphics = "/sys/class/graphics"
)

// ErrNoDevice is returned when a Sense HAT device cannot be found.
var ErrNoDevice = errors.New("sense hat device not found")

// FindFramebuffer returns the /dev path of the Sense HAT framebuffer.
func FindFramebuffer(sysRoot string) (string, error) {
	if sysRoot == "" {
		sysRoot = sysGraphics
	}
	matches, err := filepath.Glob(filepath.Join(sysRoot, "fb*"))
	if err != nil {
		return "", err
	}
	for _, dir := range matches {
		b, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(b)) == fbName {
			return filepath.Join("/dev", filepath.Base(dir)), nil
		}
	}
	return "", fmt.Errorf("framebuffer %q: %w", fbName, ErrNoDevice)
}

// Framebuffer writes frames to the LED matrix.
type Framebuffer struct {
	mu    sync.Mutex
	f     *os.File
	angle int
}

// OpenFramebuffer opens the framebuffer at path for writing.
func OpenFramebuffer(path string) (*Framebuffer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}
	return &Framebuffer{f: f}, nil
}

// SetPixels writes f rotated by the current angle.
func (fb *Framebuffer) SetPixels(f domain.Frame) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	buf := EncodeRGB565(f.Rotate(fb.angle))
	_, err := fb.f.WriteAt(buf, 0)
	return err
}

// SetRotation accepts 0, 90, 180 or 270.
func (fb *Framebuffer) SetRotation(angle int) error {
	switch angle {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("rotation must be 0, 90, 180 or 270 degrees, got %d", angle)
	}
	fb.mu.Lock()
	fb.angle = angle
	fb.mu.Unlock()
	return nil
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() error { return fb.SetPixels(domain.Frame{}) }

// Close closes the device.
func (fb *Framebuffer) Close() error { return fb.f.Close() }

// EncodeRGB565 packs a frame into 128 little-endian RGB565 bytes.
func EncodeRGB565(f domain.Frame) []byte {
	buf := make([]byte, 2*len(f))
	for i, p := range f {
		v := uint16(p.R>>3)<<11 | uint16(p.G>>2)<<5 | uint16(p.B>>3)
		buf[2*i] = byte(v)
		buf[2*i+1] = byte(v >> 8)
	}
	return buf
}

var _ domain.Display = (*Framebuffer)(nil)
