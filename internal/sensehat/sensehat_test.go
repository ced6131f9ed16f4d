package sensehat_test

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quantumtie/internal/domain"
	"quantumtie/internal/sensehat"
)

func record(typ, code uint16, value int32) []byte {
	b := make([]byte, sensehat.EventSize())
	off := len(b) - 8
	binary.LittleEndian.PutUint16(b[off:], typ)
	binary.LittleEndian.PutUint16(b[off+2:], code)
	binary.LittleEndian.PutUint32(b[off+4:], uint32(value))
	return b
}

func TestEncodeRGB565(t *testing.T) {
	var f domain.Frame
	f[0] = domain.White
	f[1] = domain.Red
	f[2] = domain.Blue
	buf := sensehat.EncodeRGB565(f)
	if len(buf) != 128 {
		t.Fatalf("len = %d, want 128", len(buf))
	}
	got := []uint16{
		binary.LittleEndian.Uint16(buf[0:]),
		binary.LittleEndian.Uint16(buf[2:]),
		binary.LittleEndian.Uint16(buf[4:]),
		binary.LittleEndian.Uint16(buf[6:]),
	}
	want := []uint16{0xFFFF, 0xF800, 0x001F, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pixel %d = %#04x, want %#04x", i, got[i], want[i])
		}
	}
}

func TestDecodeEvent(t *testing.T) {
	cases := []struct {
		rec  []byte
		want domain.StickEvent
		ok   bool
	}{
		{record(1, 28, 1), domain.StickEvent{Direction: domain.StickMiddle, Action: domain.ActionPressed}, true},
		{record(1, 103, 2), domain.StickEvent{Direction: domain.StickUp, Action: domain.ActionHeld}, true},
		{record(1, 105, 0), domain.StickEvent{Direction: domain.StickLeft, Action: domain.ActionReleased}, true},
		{record(0, 0, 0), domain.StickEvent{}, false},  // EV_SYN
		{record(1, 30, 1), domain.StickEvent{}, false}, // not a joystick key
		{[]byte{1, 2, 3}, domain.StickEvent{}, false},
	}
	for i, tc := range cases {
		got, ok := sensehat.DecodeEvent(tc.rec)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("case %d: got %+v/%v, want %+v/%v", i, got, ok, tc.want, tc.ok)
		}
	}
}

func TestJoystick_ReadsEvents(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	js := sensehat.NewJoystick(r)
	defer js.Close()

	if _, err := w.Write(append(record(0, 0, 0), record(1, 108, 1)...)); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case ev := <-js.Events():
		if ev.Direction != domain.StickDown || ev.Action != domain.ActionPressed {
			t.Fatalf("event = %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	_ = w.Close()
	select {
	case _, open := <-js.Events():
		if open {
			t.Fatal("channel should close at EOF")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestDecodeAcceleration(t *testing.T) {
	b := make([]byte, 6)
	binary.LittleEndian.PutUint16(b[0:], uint16(0))
	v := int16(-16393) // about -1 g
	binary.LittleEndian.PutUint16(b[2:], uint16(v))
	binary.LittleEndian.PutUint16(b[4:], uint16(16393))
	x, y, z := sensehat.DecodeAcceleration(b)
	if x != 0 || math.Round(y) != -1 || math.Round(z) != 1 {
		t.Fatalf("accel = %v %v %v", x, y, z)
	}
}

func TestFindFramebuffer(t *testing.T) {
	root := t.TempDir()
	for name, label := range map[string]string{"fb0": "BCM2708 FB", "fb1": "RPi-Sense FB"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "name"), []byte(label+"\n"), 0o644); err != nil {
			t.Fatalf("write name: %v", err)
		}
	}
	got, err := sensehat.FindFramebuffer(root)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != "/dev/fb1" {
		t.Fatalf("path = %q, want /dev/fb1", got)
	}

	if _, err := sensehat.FindFramebuffer(t.TempDir()); !errors.Is(err, sensehat.ErrNoDevice) {
		t.Fatalf("err = %v, want ErrNoDevice", err)
	}
}

func TestFindJoystick(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "event3", "device")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "name"), []byte("Raspberry Pi Sense HAT Joystick\n"), 0o644); err != nil {
		t.Fatalf("write name: %v", err)
	}
	got, err := sensehat.FindJoystick(root)
	if err != nil || got != "/dev/input/event3" {
		t.Fatalf("find = %q, %v", got, err)
	}
}

func TestFramebuffer_WritesRotated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb")
	if err := os.WriteFile(path, make([]byte, 128), 0o600); err != nil {
		t.Fatalf("create: %v", err)
	}
	fb, err := sensehat.OpenFramebuffer(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := fb.SetRotation(180); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if err := fb.SetRotation(45); err == nil {
		t.Fatal("expected error for 45 degrees")
	}
	var f domain.Frame
	f[0] = domain.White
	if err := fb.SetPixels(f); err != nil {
		t.Fatalf("set pixels: %v", err)
	}
	if err := fb.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if b[126] != 0xFF || b[127] != 0xFF || b[0] != 0 {
		t.Fatal("pixel 0 should land on offset 63 at 180 degrees")
	}
}
