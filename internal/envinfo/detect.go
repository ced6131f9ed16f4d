package envinfo

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"quantumtie/internal/domain"
	"quantumtie/internal/sensehat"
)

// Sources are the files and hooks Detect reads. Tests replace them.
type Sources struct {
	CPUInfo     string // /proc/cpuinfo
	Model       string // /proc/device-tree/model
	SysGraphics string // sysfs graphics class for the Sense HAT framebuffer
	SPIDevice   string // NeoPixel SPI device

	Getenv     func(string) string
	Who        func() (string, error)
	IsTerminal func() bool
	Geteuid    func() int
	Uname      func() (string, error)
}

// DefaultSources reads the live system.
func DefaultSources() Sources {
	return Sources{
		CPUInfo:     "/proc/cpuinfo",
		Model:       "/proc/device-tree/model",
		SysGraphics: "/sys/class/graphics",
		SPIDevice:   "/dev/spidev0.0",
		Getenv:      os.Getenv,
		Who: func() (string, error) {
			out, err := exec.Command("who").Output()
			return string(out), err
		},
		IsTerminal: func() bool { return term.IsTerminal(int(os.Stdout.Fd())) },
		Geteuid:    os.Geteuid,
		Uname:      uname,
	}
}

func uname() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s",
		unix.ByteSliceToString(u.Sysname[:]),
		unix.ByteSliceToString(u.Release[:]),
		unix.ByteSliceToString(u.Machine[:])), nil
}

// Detect inspects the live system.
func Detect() domain.EnvInfo { return DefaultSources().Detect() }

// Detect inspects the host through p. Unreadable sources count as absent.
func (p Sources) Detect() domain.EnvInfo {
	var info domain.EnvInfo

	if p.Uname != nil {
		if s, err := p.Uname(); err == nil {
			info.OS = s
		}
	}

	if b, err := os.ReadFile(p.CPUInfo); err == nil {
		s := string(b)
		info.IsRaspberryPi = strings.Contains(s, "BCM") || strings.Contains(s, "Raspberry Pi")
	}
	if b, err := os.ReadFile(p.Model); err == nil && strings.Contains(string(b), "Raspberry Pi") {
		info.IsRaspberryPi = true
	}

	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	vnc := getenv("VNCSESSION") != ""
	if !vnc && p.Who != nil {
		if out, err := p.Who(); err == nil {
			vnc = strings.Contains(strings.ToLower(out), "vnc")
		}
	}
	info.IsVNC = vnc
	info.IsHeadless = getenv("DISPLAY") == ""

	if _, err := sensehat.FindFramebuffer(p.SysGraphics); err == nil {
		info.SenseHatAvailable = true
	}
	if p.SPIDevice != "" {
		if _, err := os.Stat(p.SPIDevice); err == nil {
			info.NeoPixelAvailable = true
		}
	}
	info.SenseHatEmulator = p.IsTerminal != nil && p.IsTerminal()
	info.IsRoot = p.Geteuid != nil && p.Geteuid() == 0
	return info
}

// Print writes one "name: value" row per field.
func Print(w io.Writer, info domain.EnvInfo) {
	rows := []struct {
		k string
		v any
	}{
		{"os", info.OS},
		{"is_raspberry_pi", info.IsRaspberryPi},
		{"is_headless", info.IsHeadless},
		{"is_vnc", info.IsVNC},
		{"sensehat_available", info.SenseHatAvailable},
		{"neopixel_available", info.NeoPixelAvailable},
		{"sensehat_emulator", info.SenseHatEmulator},
		{"is_root", info.IsRoot},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-20s: %v\n", r.k, r.v)
	}
}

// RootWarning is the message shown when hardware needs root but the
// process does not have it. It is empty when nothing is restricted.
func RootWarning(info domain.EnvInfo) string {
	if info.IsRoot || !(info.SenseHatAvailable || info.NeoPixelAvailable) {
		return ""
	}
	return "Warning: Not running as root. Some features may be restricted."
}
