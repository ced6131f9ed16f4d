package display

import (
	"math"

	"quantumtie/internal/domain"
)

// DefaultAngle is the rotation used before the first accelerometer reading.
const DefaultAngle = 180

// ChooseAngle maps a gravity reading to a display rotation. An emulator
// without hardware always faces up.
func ChooseAngle(x, y float64, emulatorOnly bool, prev int) int {
	xr, yr := math.Round(x), math.Round(y)
	switch {
	case yr == -1:
		return 180
	case yr == 1 || emulatorOnly:
		return 0
	case xr == -1:
		return 90
	case xr == 1:
		return 270
	}
	return prev
}

// Orient rotates the primary display to match the accelerometer and
// returns the angle used. The secondary display is always upright.
func (d *Devices) Orient(prev int) (int, error) {
	angle := prev
	if d.Accel != nil {
		x, y, _, err := d.Accel.Acceleration()
		if err != nil {
			return prev, err
		}
		angle = ChooseAngle(x, y, d.EmulatorOnly, prev)
	} else if d.EmulatorOnly {
		angle = 0
	}
	if err := d.Primary.SetRotation(angle); err != nil {
		return prev, err
	}
	if d.Secondary != nil {
		if err := d.Secondary.SetRotation(0); err != nil {
			return angle, err
		}
	}
	return angle, nil
}

var _ domain.Stick = (*mergedStick)(nil)
