package types

// Direction is a joystick direction.
type Direction string

const (
	StickUp     Direction = "up"
	StickDown   Direction = "down"
	StickLeft   Direction = "left"
	StickRight  Direction = "right"
	StickMiddle Direction = "middle"
)

// StickAction is what happened to the joystick.
type StickAction string

const (
	ActionPressed  StickAction = "pressed"
	ActionReleased StickAction = "released"
	ActionHeld     StickAction = "held"
)

// StickEvent is one joystick event.
type StickEvent struct {
	Direction Direction
	Action    StickAction
}
