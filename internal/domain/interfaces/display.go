package interfaces

import domaintypes "quantumtie/internal/domain/types"

// Display is an 8x8 RGB matrix.
type Display interface {
	SetPixels(frame domaintypes.Frame) error
	// SetRotation sets the mounting angle applied to subsequent frames.
	SetRotation(angle int) error
	Clear() error
	Close() error
}

// Stick delivers joystick events.
type Stick interface {
	Events() <-chan domaintypes.StickEvent
}

// Accelerometer reports acceleration in g on each axis.
type Accelerometer interface {
	Acceleration() (x, y, z float64, err error)
}

// ResultSink receives the rendered result of each new pattern.
type ResultSink interface {
	ShowResult(frame domaintypes.Frame, pattern domaintypes.Pattern) error
}
