// Package sensehat drives the Raspberry Pi Sense HAT from Linux device files.
//
//   - Framebuffer: the "RPi-Sense FB" device, 8x8 pixels of RGB565.
//   - Joystick: the "Raspberry Pi Sense HAT Joystick" evdev input device.
//   - Accelerometer: the LSM9DS1 on I2C bus 1 at address 0x6a.
//
// Devices are located through sysfs so no fixed /dev numbering is assumed.
// Everything here needs read/write access to the device nodes, which
// usually means running as root.
package sensehat
