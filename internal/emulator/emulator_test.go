package emulator_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quantumtie/internal/domain"
	"quantumtie/internal/emulator"
)

func TestModel_KeysBecomeStickEvents(t *testing.T) {
	events := make(chan domain.StickEvent, 8)
	var m tea.Model = emulator.NewModel("test", events)

	keys := []struct {
		msg  tea.KeyMsg
		want domain.StickEvent
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, domain.StickEvent{Direction: domain.StickUp, Action: domain.ActionPressed}},
		{tea.KeyMsg{Type: tea.KeyEnter}, domain.StickEvent{Direction: domain.StickMiddle, Action: domain.ActionPressed}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, domain.StickEvent{Direction: domain.StickMiddle, Action: domain.ActionHeld}},
		{tea.KeyMsg{Type: tea.KeyEscape}, domain.StickEvent{Direction: domain.StickLeft, Action: domain.ActionHeld}},
	}
	for _, k := range keys {
		m, _ = m.Update(k.msg)
		select {
		case got := <-events:
			if got != k.want {
				t.Fatalf("key %q: event %+v, want %+v", k.msg.String(), got, k.want)
			}
		default:
			t.Fatalf("key %q: no event", k.msg.String())
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should return tea.Quit")
	}
}

func TestModel_View(t *testing.T) {
	m := emulator.NewModel("Quantum Raspberry Tie", nil)
	view := m.View()
	if !strings.Contains(view, "Quantum Raspberry Tie") {
		t.Fatalf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "power off") {
		t.Fatalf("view missing help line:\n%s", view)
	}
}

func TestEmulator_FramesAndStatus(t *testing.T) {
	e := emulator.Start("test",
		tea.WithoutRenderer(),
		tea.WithInput(bytes.NewReader(nil)),
		tea.WithOutput(io.Discard),
	)

	if err := e.SetRotation(90); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	var f domain.Frame
	f[0] = domain.Red
	if err := e.SetPixels(f); err != nil {
		t.Fatalf("set pixels: %v", err)
	}
	if _, err := e.Write([]byte("first\njob done\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	select {
	case <-e.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("emulator did not stop")
	}

	final := e.Final()
	if final.Frame()[7] != domain.Red {
		t.Fatal("frame should be rotated by 90 degrees")
	}
	if final.Status() != "job done" {
		t.Fatalf("status = %q", final.Status())
	}
	if err := e.SetPixels(f); err == nil {
		t.Fatal("expected error after close")
	}
}
