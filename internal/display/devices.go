package display

import (
	"errors"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
	"quantumtie/internal/emulator"
	"quantumtie/internal/neopixel"
	"quantumtie/internal/sensehat"
)

// Options selects the devices to open.
type Options struct {
	Emulator  bool // skip hardware
	Dual      bool // hardware plus emulator
	NeoPixel  bool
	SPIDevice string
	Paths     sensehat.Paths
	Title     string

	// EmulatorOptions are passed to the bubbletea program.
	EmulatorOptions []tea.ProgramOption
}

// Devices is the set of opened devices.
type Devices struct {
	Primary      domain.Display
	Secondary    domain.Display
	Accel        domain.Accelerometer
	Sinks        []domain.ResultSink
	Emulator     *emulator.Emulator
	EmulatorOnly bool

	stick   *mergedStick
	closers []io.Closer
}

// Opener opens hardware. Tests replace it.
type Opener struct {
	SenseHat func(sensehat.Paths) (*sensehat.Hat, []error)
	NeoPixel func(dev string) (*neopixel.Strip, error)
	Emulator func(title string, opts ...tea.ProgramOption) *emulator.Emulator
}

// DefaultOpener opens real devices.
var DefaultOpener = Opener{
	SenseHat: sensehat.Open,
	NeoPixel: neopixel.Open,
	Emulator: emulator.Start,
}

// Open opens the devices described by opts with DefaultOpener.
func Open(opts Options, logger *log.Logger) (*Devices, error) {
	return DefaultOpener.Open(opts, logger)
}

// Open opens the devices described by opts.
func (o Opener) Open(opts Options, logger *log.Logger) (*Devices, error) {
	d := &Devices{stick: newMergedStick()}
	if opts.Title == "" {
		opts.Title = "Quantum Raspberry Tie"
	}

	var hat *sensehat.Hat
	if !opts.Emulator && o.SenseHat != nil {
		var warns []error
		hat, warns = o.SenseHat(opts.Paths)
		for _, w := range warns {
			if hat == nil {
				logger.Warn("sense hat unavailable, using emulator", "err", w)
			} else {
				logger.Warn("sense hat device unavailable", "err", w)
			}
		}
	}

	if hat != nil {
		d.Primary = hat
		d.closers = append(d.closers, hat)
		if hat.Stick != nil {
			d.stick.add(hat.Stick)
		}
		if hat.Accel != nil {
			d.Accel = hat.Accel
		}
	}

	if hat == nil || opts.Dual {
		if o.Emulator == nil {
			return nil, errors.New("no display available")
		}
		emu := o.Emulator(opts.Title, opts.EmulatorOptions...)
		d.Emulator = emu
		d.stick.add(emu)
		if hat == nil {
			d.Primary = emu
			d.Accel = emu
			d.EmulatorOnly = true
		} else {
			d.Secondary = emu
		}
	}

	if opts.NeoPixel && o.NeoPixel != nil {
		dev := opts.SPIDevice
		if dev == "" {
			dev = "/dev/spidev0.0"
		}
		strip, err := o.NeoPixel(dev)
		if err != nil {
			logger.Warn("neopixel unavailable", "err", err)
		} else {
			d.Sinks = append(d.Sinks, strip)
			d.closers = append(d.closers, strip)
		}
	}
	return d, nil
}

// AddSink registers another result sink, closing it with the devices when
// it implements io.Closer.
func (d *Devices) AddSink(s domain.ResultSink) {
	d.Sinks = append(d.Sinks, s)
	if c, ok := s.(io.Closer); ok {
		d.closers = append(d.closers, c)
	}
}

// Stick returns the joystick events of every source.
func (d *Devices) Stick() domain.Stick { return d.stick }

// Close closes every device. The emulator goes last so the terminal is
// restored after any final writes.
func (d *Devices) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	if d.Emulator != nil {
		errs = append(errs, d.Emulator.Close())
	}
	return errors.Join(errs...)
}

// mergedStick fans several joysticks into one channel.
type mergedStick struct {
	out chan domain.StickEvent
	wg  sync.WaitGroup
}

func newMergedStick() *mergedStick {
	return &mergedStick{out: make(chan domain.StickEvent, 16)}
}

func (m *mergedStick) add(s domain.Stick) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for ev := range s.Events() {
			select {
			case m.out <- ev:
			default:
			}
		}
	}()
}

func (m *mergedStick) Events() <-chan domain.StickEvent { return m.out }
