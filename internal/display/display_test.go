package display_test

import (
	"bytes"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quantumtie/internal/display"
	"quantumtie/internal/domain"
	"quantumtie/internal/emulator"
	"quantumtie/internal/sensehat"
)

func TestChooseAngle(t *testing.T) {
	cases := []struct {
		x, y    float64
		emuOnly bool
		prev    int
		want    int
	}{
		{0, -0.9, false, 0, 180},
		{0, 1.1, false, 180, 0},
		{0.1, 0.1, true, 180, 0},
		{-1, 0, false, 180, 90},
		{0.98, 0.2, false, 180, 270},
		{0.2, 0.3, false, 90, 90},
	}
	for i, tc := range cases {
		if got := display.ChooseAngle(tc.x, tc.y, tc.emuOnly, tc.prev); got != tc.want {
			t.Fatalf("case %d: angle %d, want %d", i, got, tc.want)
		}
	}
}

type rotDisplay struct{ angle int }

func (d *rotDisplay) SetPixels(domain.Frame) error { return nil }
func (d *rotDisplay) SetRotation(a int) error      { d.angle = a; return nil }
func (d *rotDisplay) Clear() error                 { return nil }
func (d *rotDisplay) Close() error                 { return nil }

type tilt struct{ x, y float64 }

func (a tilt) Acceleration() (float64, float64, float64, error) { return a.x, a.y, 0, nil }

func TestOrient_PrimaryFollowsGravity(t *testing.T) {
	primary, secondary := &rotDisplay{}, &rotDisplay{angle: 90}
	d := &display.Devices{Primary: primary, Secondary: secondary, Accel: tilt{x: -1}}

	angle, err := d.Orient(display.DefaultAngle)
	if err != nil {
		t.Fatalf("orient: %v", err)
	}
	if angle != 90 || primary.angle != 90 {
		t.Fatalf("primary angle = %d/%d, want 90", angle, primary.angle)
	}
	if secondary.angle != 0 {
		t.Fatalf("secondary angle = %d, want 0", secondary.angle)
	}
}

func headless(title string, _ ...tea.ProgramOption) *emulator.Emulator {
	return emulator.Start(title,
		tea.WithoutRenderer(),
		tea.WithInput(bytes.NewReader(nil)),
		tea.WithOutput(io.Discard),
	)
}

func TestOpen_FallsBackToEmulator(t *testing.T) {
	o := display.Opener{
		SenseHat: func(sensehat.Paths) (*sensehat.Hat, []error) {
			return nil, []error{sensehat.ErrNoDevice}
		},
		Emulator: headless,
	}
	d, err := o.Open(display.Options{}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if !d.EmulatorOnly || d.Emulator == nil || d.Primary == nil {
		t.Fatal("emulator should be the primary display")
	}
	if d.Secondary != nil {
		t.Fatal("no secondary display expected")
	}
	if angle, err := d.Orient(display.DefaultAngle); err != nil || angle != 0 {
		t.Fatalf("emulator orientation = %d, %v", angle, err)
	}
}

func TestOpen_ForcedEmulatorSkipsHardware(t *testing.T) {
	called := false
	o := display.Opener{
		SenseHat: func(sensehat.Paths) (*sensehat.Hat, []error) {
			called = true
			return nil, nil
		},
		Emulator: headless,
	}
	d, err := o.Open(display.Options{Emulator: true}, log.New(io.Discard))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()
	if called {
		t.Fatal("hardware should not be opened")
	}
	if d.Stick() == nil {
		t.Fatal("stick should be available")
	}
}
