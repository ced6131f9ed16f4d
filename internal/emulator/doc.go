// Package emulator is a terminal stand-in for the Sense HAT.
//
// It runs a bubbletea program that draws the 8x8 matrix as coloured cells
// and turns key presses into joystick events:
//
//	arrows          pressed up/down/left/right
//	enter, space    pressed middle (run again now)
//	x               held middle (power off)
//	q, esc          held left (stop looping)
//	ctrl+c          held left, then quit the emulator
//
// The emulator's accelerometer always reports the board lying flat.
package emulator
