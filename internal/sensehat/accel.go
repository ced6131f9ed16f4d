package sensehat

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"quantumtie/internal/domain"
)

const (
	i2cSlave = 0x0703 // ioctl: set target address

	lsm9ds1Addr = 0x6a
	ctrlReg6XL  = 0x20
	outXLXL     = 0x28

	// 119 Hz output rate, ±2 g full scale.
	odr119Hz2g = 0x60
	// Sensitivity at ±2 g, in g per LSB.
	gPerLSB = 0.061e-3
)

// Accelerometer reads the LSM9DS1 accelerometer.
type Accelerometer struct {
	mu sync.Mutex
	f  *os.File
}

// OpenAccelerometer opens the I2C bus device (normally /dev/i2c-1) and
// enables the accelerometer.
func OpenAccelerometer(bus string) (*Accelerometer, error) {
	f, err := os.OpenFile(bus, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}
	if err := unix.IoctlSetInt(int(f.Fd()), i2cSlave, lsm9ds1Addr); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("select lsm9ds1: %w", err)
	}
	if _, err := f.Write([]byte{ctrlReg6XL, odr119Hz2g}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("enable accelerometer: %w", err)
	}
	return &Accelerometer{f: f}, nil
}

// Acceleration returns the current reading in g.
func (a *Accelerometer) Acceleration() (x, y, z float64, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, err := a.f.Write([]byte{outXLXL}); err != nil {
		return 0, 0, 0, fmt.Errorf("accelerometer select register: %w", err)
	}
	buf := make([]byte, 6)
	if _, err := a.f.Read(buf); err != nil {
		return 0, 0, 0, fmt.Errorf("accelerometer read: %w", err)
	}
	x, y, z = DecodeAcceleration(buf)
	return x, y, z, nil
}

// Close closes the bus device.
func (a *Accelerometer) Close() error { return a.f.Close() }

// DecodeAcceleration converts the six output registers (X, Y, Z as
// little-endian int16) into g.
func DecodeAcceleration(b []byte) (x, y, z float64) {
	axis := func(i int) float64 {
		return float64(int16(binary.LittleEndian.Uint16(b[i:]))) * gPerLSB
	}
	return axis(0), axis(2), axis(4)
}

var _ domain.Accelerometer = (*Accelerometer)(nil)
