package glow

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
	"quantumtie/internal/layout"
)

const (
	defaultInterval = 20 * time.Millisecond
	defaultOffHold  = time.Second
)

// Renderer draws the State onto the displays until shutdown or cancellation.
type Renderer struct {
	State     *State
	Primary   domain.Display
	Secondary domain.Display      // optional second matrix
	Sinks     []domain.ResultSink // receive each new result once
	Layout    layout.Layout
	Measured  int // qubits the circuit measures

	// LogoMask animates the rainbow inside the logo; when false it runs over
	// the layout's own pixels.
	LogoMask bool
	Interval time.Duration
	OffHold  time.Duration
	PowerOff func(ctx context.Context) error
	Log      *log.Logger

	rainbow *Rainbow
	shown   domain.Pattern
	hasShow bool
	lastErr string
}

// NewRenderer returns a renderer with the default frame interval.
func NewRenderer(state *State, primary domain.Display, l layout.Layout, measured int, logger *log.Logger) *Renderer {
	return &Renderer{
		State:    state,
		Primary:  primary,
		Layout:   l,
		Measured: measured,
		LogoMask: true,
		Interval: defaultInterval,
		OffHold:  defaultOffHold,
		Log:      logger,
		rainbow:  NewRainbow(),
	}
}

// Run renders until ctx is cancelled or a shutdown has been carried out.
func (r *Renderer) Run(ctx context.Context) error {
	if r.rainbow == nil {
		r.rainbow = NewRainbow()
	}
	interval := r.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if done := r.Tick(ctx); done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Tick draws one frame. It reports true once shutdown has completed.
func (r *Renderer) Tick(ctx context.Context) bool {
	if r.rainbow == nil {
		r.rainbow = NewRainbow()
	}
	snap := r.State.Snapshot()

	switch {
	case snap.Shutdown:
		r.shutdown(ctx)
		return true
	case snap.Thinking && snap.ShowLogo:
		r.write(r.Primary, layout.QKLogo)
		r.write(r.Secondary, layout.QArcs)
	case snap.Thinking:
		f := r.rainbow.Step(r.mask())
		r.writeAll(f)
	default:
		if r.State.takeFlash() {
			r.writeAll(r.rainbow.Step(r.mask()))
			return false
		}
		f := r.Layout.Render(snap.Pattern, r.Measured)
		r.writeAll(f)
		if !r.hasShow || snap.Pattern != r.shown {
			r.shown, r.hasShow = snap.Pattern, true
			r.publish(f, snap.Pattern)
		}
	}
	return false
}

func (r *Renderer) mask() []int {
	if r.LogoMask {
		return layout.QKLogoMask
	}
	return r.Layout.Mask()
}

func (r *Renderer) writeAll(f domain.Frame) {
	r.write(r.Primary, f)
	r.write(r.Secondary, f)
}

func (r *Renderer) write(d domain.Display, f domain.Frame) {
	if d == nil {
		return
	}
	r.report(d.SetPixels(f))
}

func (r *Renderer) publish(f domain.Frame, p domain.Pattern) {
	for _, s := range r.Sinks {
		if err := s.ShowResult(f, p); err != nil && r.Log != nil {
			r.Log.Warn("result sink failed", "err", err)
		}
	}
}

// report logs display errors once per distinct message.
func (r *Renderer) report(err error) {
	if err == nil {
		r.lastErr = ""
		return
	}
	if err.Error() == r.lastErr {
		return
	}
	r.lastErr = err.Error()
	if r.Log != nil {
		r.Log.Warn("display write failed", "err", err)
	}
}

func (r *Renderer) shutdown(ctx context.Context) {
	if r.Log != nil {
		r.Log.Info("shutting down")
	}
	r.writeAll(layout.Off)

	select {
	case <-ctx.Done():
	case <-time.After(r.OffHold):
	}

	for _, d := range []domain.Display{r.Primary, r.Secondary} {
		if d != nil {
			r.report(d.Clear())
		}
	}
	if r.PowerOff == nil {
		return
	}
	if err := r.PowerOff(ctx); err != nil && r.Log != nil {
		r.Log.Error("power off failed", "err", err)
	}
}
