package envinfo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quantumtie/internal/domain"
	"quantumtie/internal/envinfo"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetect_RaspberryPi(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "cpuinfo"), "processor : 0\nHardware : BCM2835\n")
	write(t, filepath.Join(root, "graphics", "fb1", "name"), "RPi-Sense FB\n")
	write(t, filepath.Join(root, "spidev0.0"), "")

	p := envinfo.Sources{
		CPUInfo:     filepath.Join(root, "cpuinfo"),
		Model:       filepath.Join(root, "missing"),
		SysGraphics: filepath.Join(root, "graphics"),
		SPIDevice:   filepath.Join(root, "spidev0.0"),
		Getenv:      func(k string) string { return map[string]string{"DISPLAY": ":0"}[k] },
		Who:         func() (string, error) { return "pi  tty7  2024-01-01 (:1 vnc)\n", nil },
		IsTerminal:  func() bool { return true },
		Geteuid:     func() int { return 1000 },
		Uname:       func() (string, error) { return "Linux-6.6.31-rpi-aarch64", nil },
	}
	info := p.Detect()
	want := domain.EnvInfo{
		OS:                "Linux-6.6.31-rpi-aarch64",
		IsRaspberryPi:     true,
		IsVNC:             true,
		SenseHatAvailable: true,
		NeoPixelAvailable: true,
		SenseHatEmulator:  true,
	}
	if info != want {
		t.Fatalf("info = %+v\nwant %+v", info, want)
	}
	if envinfo.RootWarning(info) == "" {
		t.Fatal("expected root warning with hardware and no root")
	}
}

func TestDetect_Headless(t *testing.T) {
	root := t.TempDir()
	p := envinfo.Sources{
		CPUInfo:     filepath.Join(root, "none"),
		Model:       filepath.Join(root, "none"),
		SysGraphics: filepath.Join(root, "none"),
		Getenv:      func(string) string { return "" },
		Geteuid:     func() int { return 0 },
	}
	info := p.Detect()
	if info.IsRaspberryPi || !info.IsHeadless || info.IsVNC || info.SenseHatAvailable || !info.IsRoot {
		t.Fatalf("info = %+v", info)
	}
	if envinfo.RootWarning(info) != "" {
		t.Fatal("no warning expected as root")
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	envinfo.Print(&buf, domain.EnvInfo{OS: "Linux", IsRoot: true})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d rows", len(lines))
	}
	if lines[0] != "os                  : Linux" || lines[7] != "is_root             : true" {
		t.Fatalf("rows = %q", lines)
	}
}
