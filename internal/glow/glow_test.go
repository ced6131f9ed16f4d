package glow_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"quantumtie/internal/domain"
	"quantumtie/internal/glow"
	"quantumtie/internal/layout"
)

type fakeDisplay struct {
	mu      sync.Mutex
	frames  []domain.Frame
	cleared int
}

func (d *fakeDisplay) SetPixels(f domain.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, f)
	return nil
}
func (d *fakeDisplay) SetRotation(int) error { return nil }
func (d *fakeDisplay) Clear() error          { d.cleared++; return nil }
func (d *fakeDisplay) Close() error          { return nil }

func (d *fakeDisplay) last() domain.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames[len(d.frames)-1]
}

type fakeSink struct{ patterns []domain.Pattern }

func (s *fakeSink) ShowResult(_ domain.Frame, p domain.Pattern) error {
	s.patterns = append(s.patterns, p)
	return nil
}

func newRenderer(t *testing.T) (*glow.Renderer, *glow.State, *fakeDisplay, *fakeDisplay) {
	t.Helper()
	l, err := layout.Get(layout.Bowtie)
	if err != nil {
		t.Fatalf("get layout: %v", err)
	}
	st := glow.NewState(domain.Zeros(5))
	primary, secondary := &fakeDisplay{}, &fakeDisplay{}
	r := glow.NewRenderer(st, primary, l, 5, log.New(io.Discard))
	r.Secondary = secondary
	r.OffHold = 0
	return r, st, primary, secondary
}

func TestRainbow_FirstStep(t *testing.T) {
	rb := glow.NewRainbow()
	f := rb.Step(nil)
	if got := f[0]; got.R != 255 || got.G != 15 || got.B != 0 {
		t.Fatalf("pixel 0 = %+v, want {255 15 0}", got)
	}
	if h := rb.Hue(63); h < 0.959 || h > 0.961 {
		t.Fatalf("hue 63 = %v, want 0.96", h)
	}
}

func TestRainbow_WrapsAndMasks(t *testing.T) {
	rb := glow.NewRainbow()
	for i := 0; i < 10; i++ {
		rb.Step(nil)
	}
	// 0.95 + 0.10 wraps past 1.
	if h := rb.Hue(63); h < 0.049 || h > 0.051 {
		t.Fatalf("hue 63 = %v, want 0.05", h)
	}
	f := rb.Step([]int{5})
	for i, p := range f {
		if i != 5 && p != domain.Black {
			t.Fatalf("pixel %d lit outside mask", i)
		}
	}
	if f[5] == domain.Black {
		t.Fatal("masked pixel should be lit")
	}
}

func TestRenderer_ThinkingLogo_DualGlyphs(t *testing.T) {
	r, st, primary, secondary := newRenderer(t)
	st.SetThinking(true)
	st.SetShowLogo(true)

	if done := r.Tick(context.Background()); done {
		t.Fatal("tick should not finish")
	}
	if primary.last() != layout.QKLogo {
		t.Fatal("primary should show logo")
	}
	if secondary.last() != layout.QArcs {
		t.Fatal("secondary should show arcs")
	}
}

func TestRenderer_ThinkingRainbow_UsesMask(t *testing.T) {
	r, st, primary, _ := newRenderer(t)
	r.LogoMask = false
	st.SetThinking(true)

	r.Tick(context.Background())
	f := primary.last()
	inLayout := map[int]bool{}
	for _, i := range r.Layout.Mask() {
		inLayout[i] = true
	}
	for i, p := range f {
		if !inLayout[i] && p != domain.Black {
			t.Fatalf("pixel %d lit outside layout", i)
		}
	}
}

func TestRenderer_Result_PublishesOnChange(t *testing.T) {
	r, st, primary, _ := newRenderer(t)
	sink := &fakeSink{}
	r.Sinks = []domain.ResultSink{sink}

	st.ShowResult("10000")
	r.Tick(context.Background())
	r.Tick(context.Background())
	st.ShowResult("01000")
	r.Tick(context.Background())

	if len(sink.patterns) != 2 || sink.patterns[0] != "10000" || sink.patterns[1] != "01000" {
		t.Fatalf("sink patterns = %v", sink.patterns)
	}
	want := r.Layout.Render("01000", 5)
	if primary.last() != want {
		t.Fatal("primary should show the latest pattern")
	}
}

func TestRenderer_Flash_OneRainbowFrame(t *testing.T) {
	r, st, primary, _ := newRenderer(t)
	st.Flash()
	r.Tick(context.Background())
	flash := primary.last()
	r.Tick(context.Background())
	if primary.last() == flash {
		t.Fatal("flash should last one frame")
	}
	if primary.last() != r.Layout.Render(domain.Zeros(5), 5) {
		t.Fatal("result should return after flash")
	}
}

func TestRenderer_Shutdown(t *testing.T) {
	r, st, primary, secondary := newRenderer(t)
	powered := false
	r.PowerOff = func(context.Context) error { powered = true; return nil }
	st.RequestShutdown()

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !powered {
		t.Fatal("power off not called")
	}
	if primary.last() != layout.Off {
		t.Fatal("off banner not shown")
	}
	if primary.cleared != 1 || secondary.cleared != 1 {
		t.Fatalf("clears = %d/%d", primary.cleared, secondary.cleared)
	}
}

func TestRenderer_Run_StopsOnCancel(t *testing.T) {
	r, _, _, _ := newRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != context.Canceled {
		t.Fatalf("run = %v, want context.Canceled", err)
	}
}
