// Package run drives a demo: submit the circuit, poll the job, hand the
// most frequent pattern to the display state and repeat for simulators.
//
// Joystick events end the wait between runs early: a tap starts the next
// run, holding the middle button shuts the device down and holding any
// other direction stops looping.
package run
