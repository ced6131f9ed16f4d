package glow

import (
	"sync"

	"quantumtie/internal/domain"
)

// Snapshot is a consistent copy of the display state.
type Snapshot struct {
	Thinking bool
	ShowLogo bool
	Shutdown bool
	Pattern  domain.Pattern
}

// State is the display state shared by the main loop and the renderer.
type State struct {
	mu    sync.Mutex
	snap  Snapshot
	flash bool
}

// NewState returns a state showing pattern, not thinking.
func NewState(pattern domain.Pattern) *State {
	return &State{snap: Snapshot{Pattern: pattern}}
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// SetThinking switches the pending-job animation on or off.
func (s *State) SetThinking(v bool) {
	s.mu.Lock()
	s.snap.Thinking = v
	s.mu.Unlock()
}

// SetShowLogo shows the static logo instead of the rainbow while thinking.
func (s *State) SetShowLogo(v bool) {
	s.mu.Lock()
	s.snap.ShowLogo = v
	s.mu.Unlock()
}

// ShowResult stores a new pattern and stops the animation.
func (s *State) ShowResult(p domain.Pattern) {
	s.mu.Lock()
	s.snap.Pattern = p
	s.snap.Thinking = false
	s.snap.ShowLogo = false
	s.mu.Unlock()
}

// RequestShutdown makes the renderer show the power-off banner and stop.
func (s *State) RequestShutdown() {
	s.mu.Lock()
	s.snap.Shutdown = true
	s.mu.Unlock()
}

// Flash asks for a single rainbow frame on the next tick.
func (s *State) Flash() {
	s.mu.Lock()
	s.flash = true
	s.mu.Unlock()
}

func (s *State) takeFlash() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.flash
	s.flash = false
	return f
}
