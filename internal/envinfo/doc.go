// Package envinfo reports what the host offers the demo: Raspberry Pi
// hardware, a desktop session, the Sense HAT and NeoPixel devices, a
// terminal for the emulator, and root privileges.
package envinfo
