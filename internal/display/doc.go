// Package display opens the output devices for a run and keeps them
// together: the primary matrix, an optional secondary matrix, joystick
// sources, the accelerometer and result sinks.
//
// Hardware is tried first. If the Sense HAT cannot be opened the terminal
// emulator takes its place, and in dual mode the emulator is added next to
// the hardware as a secondary display.
package display
