package sensehat

import (
	"errors"
	"fmt"
)

// Paths overrides device discovery. Empty fields are discovered.
type Paths struct {
	Framebuffer string
	Joystick    string
	I2CBus      string
}

// Hat bundles the three Sense HAT devices.
type Hat struct {
	*Framebuffer
	Stick *Joystick
	Accel *Accelerometer
}

// Open opens every Sense HAT device. The framebuffer is required; the
// joystick and accelerometer are optional and left nil when unavailable.
func Open(p Paths) (*Hat, []error) {
	var warnings []error

	fbPath := p.Framebuffer
	if fbPath == "" {
		path, err := FindFramebuffer("")
		if err != nil {
			return nil, []error{err}
		}
		fbPath = path
	}
	fb, err := OpenFramebuffer(fbPath)
	if err != nil {
		return nil, []error{err}
	}
	h := &Hat{Framebuffer: fb}

	jsPath := p.Joystick
	if jsPath == "" {
		jsPath, err = FindJoystick("")
	}
	if err == nil {
		h.Stick, err = OpenJoystick(jsPath)
	}
	if err != nil {
		warnings = append(warnings, err)
	}

	bus := p.I2CBus
	if bus == "" {
		bus = "/dev/i2c-1"
	}
	if h.Accel, err = OpenAccelerometer(bus); err != nil {
		warnings = append(warnings, err)
	}
	return h, warnings
}

// Close closes every open device.
func (h *Hat) Close() error {
	var errs []error
	if h.Stick != nil {
		errs = append(errs, h.Stick.Close())
	}
	if h.Accel != nil {
		errs = append(errs, h.Accel.Close())
	}
	errs = append(errs, h.Framebuffer.Close())
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close sense hat: %w", err)
	}
	return nil
}
