package sensehat

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"quantumtie/internal/domain"
)

const (
	stickName = "Raspberry Pi Sense HAT Joystick"
	sysInput  = "/sys/class/input"

	evKey = 0x01

	keyEnter = 28
	keyUp    = 103
	keyLeft  = 105
	keyRight = 106
	keyDown  = 108
)

// eventSize is sizeof(struct input_event) on this platform.
var eventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

// FindJoystick returns the /dev/input path of the Sense HAT joystick.
func FindJoystick(sysRoot string) (string, error) {
	if sysRoot == "" {
		sysRoot = sysInput
	}
	matches, err := filepath.Glob(filepath.Join(sysRoot, "event*"))
	if err != nil {
		return "", err
	}
	for _, dir := range matches {
		b, err := os.ReadFile(filepath.Join(dir, "device", "name"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(b)) == stickName {
			return filepath.Join("/dev/input", filepath.Base(dir)), nil
		}
	}
	return "", fmt.Errorf("joystick %q: %w", stickName, ErrNoDevice)
}

// Joystick reads joystick events in a background goroutine.
type Joystick struct {
	f      io.ReadCloser
	events chan domain.StickEvent
	once   sync.Once
}

// OpenJoystick opens the evdev device at path and starts reading it.
func OpenJoystick(path string) (*Joystick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open joystick: %w", err)
	}
	return NewJoystick(f), nil
}

// NewJoystick reads evdev records from r until it fails or is closed.
func NewJoystick(r io.ReadCloser) *Joystick {
	j := &Joystick{f: r, events: make(chan domain.StickEvent, 16)}
	go j.read()
	return j
}

// Events returns the event channel. It is closed when reading stops.
func (j *Joystick) Events() <-chan domain.StickEvent { return j.events }

// Close stops reading.
func (j *Joystick) Close() error {
	var err error
	j.once.Do(func() { err = j.f.Close() })
	return err
}

func (j *Joystick) read() {
	defer close(j.events)
	buf := make([]byte, eventSize)
	for {
		if _, err := io.ReadFull(j.f, buf); err != nil {
			return
		}
		ev, ok := DecodeEvent(buf)
		if !ok {
			continue
		}
		select {
		case j.events <- ev:
		default: // nobody is listening; drop
		}
	}
}

// DecodeEvent converts one input_event record into a joystick event. Records
// that are not joystick key events report false.
func DecodeEvent(rec []byte) (domain.StickEvent, bool) {
	if len(rec) < eventSize {
		return domain.StickEvent{}, false
	}
	off := eventSize - 8
	typ := binary.LittleEndian.Uint16(rec[off:])
	code := binary.LittleEndian.Uint16(rec[off+2:])
	value := int32(binary.LittleEndian.Uint32(rec[off+4:]))
	if typ != evKey {
		return domain.StickEvent{}, false
	}

	var dir domain.Direction
	switch code {
	case keyUp:
		dir = domain.StickUp
	case keyDown:
		dir = domain.StickDown
	case keyLeft:
		dir = domain.StickLeft
	case keyRight:
		dir = domain.StickRight
	case keyEnter:
		dir = domain.StickMiddle
	default:
		return domain.StickEvent{}, false
	}

	var act domain.StickAction
	switch value {
	case 0:
		act = domain.ActionReleased
	case 1:
		act = domain.ActionPressed
	case 2:
		act = domain.ActionHeld
	default:
		return domain.StickEvent{}, false
	}
	return domain.StickEvent{Direction: dir, Action: act}, true
}

// EventSize is the size of one evdev record on this platform.
func EventSize() int { return eventSize }

var _ domain.Stick = (*Joystick)(nil)
