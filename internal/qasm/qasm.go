package qasm

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultFile is used when no circuit is named.
const DefaultFile = "expt.qasm"

var (
	// ErrNotFound is returned when no circuit file can be located.
	ErrNotFound = errors.New("QASM file not found")
	// ErrTooShort is returned for sources too short to be a circuit.
	ErrTooShort = errors.New("QASM file is too short to be valid")
	// ErrNoQubits is returned when no quantum register is declared.
	ErrNoQubits = errors.New("QASM file declares no qubits")
)

//go:embed circuits/*.qasm
var embedded embed.FS

// Source is a loaded circuit file.
type Source struct {
	Name string // base file name
	Path string // empty for embedded circuits
	Text string
}

// FileName maps the short names "16" and "12" onto their default files.
// Names that contain a path are returned unchanged.
func FileName(input string) string {
	switch {
	case input == "":
		return DefaultFile
	case strings.ContainsRune(input, '/'):
		return input
	case strings.Contains(input, "16"):
		return "expt16.qasm"
	case strings.Contains(input, "12"):
		return "expt12.qasm"
	}
	return input
}

// Load resolves input against dir and reads it. Bare names are looked up in
// dir. The default circuits are served from embedded copies when they are
// not on disk; any other missing file falls back to dir/expt.qasm.
func Load(input, dir string) (Source, error) {
	name := FileName(input)
	path := name
	if !strings.ContainsRune(name, '/') {
		path = filepath.Join(dir, name)
	}

	src, err := readSource(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return src, err
	}
	n := filepath.Base(name)
	if b, err := embedded.ReadFile("circuits/" + n); err == nil {
		return Source{Name: n, Text: string(b)}, nil
	}
	if n != DefaultFile {
		src, err := readSource(filepath.Join(dir, DefaultFile))
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return src, err
		}
	}
	return Source{}, fmt.Errorf("%s: %w", path, ErrNotFound)
}

func readSource(path string) (Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Source{}, err
		}
		return Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Source{Name: filepath.Base(path), Path: path, Text: string(b)}, nil
}

// Info is what the program needs to know about a circuit.
type Info struct {
	Version   string
	NumQubits int
	NumClbits int
	// Registers are the classical register names in declaration order.
	Registers []string
}

var (
	commentRE = regexp.MustCompile(`//[^\n]*`)
	versionRE = regexp.MustCompile(`OPENQASM\s+([0-9.]+)\s*;`)
	qregRE    = regexp.MustCompile(`\bqreg\s+\w+\s*\[\s*(\d+)\s*\]`)
	cregRE    = regexp.MustCompile(`\bcreg\s+(\w+)\s*\[\s*(\d+)\s*\]`)
	qubitsRE  = regexp.MustCompile(`\bqubit\s*\[\s*(\d+)\s*\]\s*\w+`)
	qubitRE   = regexp.MustCompile(`\bqubit\s+\w+\s*;`)
	bitsRE    = regexp.MustCompile(`\bbit\s*\[\s*(\d+)\s*\]\s*(\w+)`)
	bitRE     = regexp.MustCompile(`\bbit\s+(\w+)\s*;`)
)

// Parse reads the version and register sizes of an OPENQASM 2 or 3 source.
func Parse(src string) (Info, error) {
	if len(strings.TrimSpace(src)) < 5 {
		return Info{}, ErrTooShort
	}
	src = commentRE.ReplaceAllString(src, "")

	var info Info
	if m := versionRE.FindStringSubmatch(src); m != nil {
		info.Version = m[1]
	}
	info.NumQubits = sum(qregRE, src) + sum(qubitsRE, src) + len(qubitRE.FindAllString(src, -1))
	info.NumClbits = sumGroup(cregRE, src, 2) + sum(bitsRE, src) + len(bitRE.FindAllString(src, -1))
	info.Registers = registers(src)
	if info.NumQubits == 0 {
		return Info{}, ErrNoQubits
	}
	return info, nil
}

func sum(re *regexp.Regexp, src string) int { return sumGroup(re, src, 1) }

func sumGroup(re *regexp.Regexp, src string, group int) int {
	n := 0
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		v, _ := strconv.Atoi(m[group])
		n += v
	}
	return n
}

// registers returns the classical register names in source order.
func registers(src string) []string {
	type decl struct {
		at   int
		name string
	}
	var decls []decl
	for _, d := range []struct {
		re    *regexp.Regexp
		group int
	}{{cregRE, 1}, {bitsRE, 2}, {bitRE, 1}} {
		for _, m := range d.re.FindAllStringSubmatchIndex(src, -1) {
			lo, hi := m[2*d.group], m[2*d.group+1]
			decls = append(decls, decl{at: m[0], name: src[lo:hi]})
		}
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].at < decls[j].at })

	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.name
	}
	return names
}
