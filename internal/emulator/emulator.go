package emulator

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"quantumtie/internal/domain"
)

// Emulator is a running terminal matrix. It implements domain.Display,
// domain.Stick and domain.Accelerometer.
type Emulator struct {
	prog   *tea.Program
	events chan domain.StickEvent
	done   chan struct{}

	mu    sync.Mutex
	angle int
	final Model
	err   error
}

// Start launches the emulator. Without options it takes over the terminal
// with the alternate screen.
func Start(title string, opts ...tea.ProgramOption) *Emulator {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	e := &Emulator{
		events: make(chan domain.StickEvent, 16),
		done:   make(chan struct{}),
	}
	e.prog = tea.NewProgram(NewModel(title, e.events), opts...)

	go func() {
		defer close(e.done)
		m, err := e.prog.Run()
		e.mu.Lock()
		defer e.mu.Unlock()
		e.err = err
		if fm, ok := m.(Model); ok {
			e.final = fm
		}
	}()
	return e
}

// SetPixels draws f rotated by the current angle.
func (e *Emulator) SetPixels(f domain.Frame) error {
	select {
	case <-e.done:
		return fmt.Errorf("emulator closed")
	default:
	}
	e.mu.Lock()
	angle := e.angle
	e.mu.Unlock()
	e.prog.Send(frameMsg(f.Rotate(angle)))
	return nil
}

// SetRotation sets the angle applied to later frames.
func (e *Emulator) SetRotation(angle int) error {
	switch angle {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("rotation must be 0, 90, 180 or 270 degrees, got %d", angle)
	}
	e.mu.Lock()
	e.angle = angle
	e.mu.Unlock()
	return nil
}

// Clear turns every pixel off.
func (e *Emulator) Clear() error { return e.SetPixels(domain.Frame{}) }

// Close quits the program and waits for the terminal to be restored.
func (e *Emulator) Close() error {
	e.prog.Quit()
	<-e.done
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Done is closed when the program exits, including when the operator quits.
func (e *Emulator) Done() <-chan struct{} { return e.done }

// Events returns joystick events generated from the keyboard.
func (e *Emulator) Events() <-chan domain.StickEvent { return e.events }

// Acceleration reports the board lying flat.
func (e *Emulator) Acceleration() (x, y, z float64, err error) { return 0, 0, 1, nil }

// Write shows the last non-empty line of p as the status line, so the
// emulator can be used as a log destination.
func (e *Emulator) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimRight(string(p), "\n"), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last != "" {
		select {
		case <-e.done:
		default:
			e.prog.Send(statusMsg(last))
		}
	}
	return len(p), nil
}

// Final returns the model the program ended with. Valid after Done.
func (e *Emulator) Final() Model {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.final
}

var (
	_ domain.Display       = (*Emulator)(nil)
	_ domain.Stick         = (*Emulator)(nil)
	_ domain.Accelerometer = (*Emulator)(nil)
)
