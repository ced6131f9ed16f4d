package layout

import (
	"fmt"
	"strings"

	"quantumtie/internal/domain"
)

// Name identifies a layout.
type Name string

const (
	Bowtie Name = "bowtie"
	Tee    Name = "tee"
	Hex    Name = "hex"
	Q16    Name = "q16"
)

// Layout is an ordered list of pixel groups, one per qubit.
type Layout struct {
	Name   Name
	Groups [][]int
}

var layouts = map[Name]Layout{
	Bowtie: {Name: Bowtie, Groups: [][]int{
		{40, 41, 48, 49}, {8, 9, 16, 17}, {28, 29, 36, 37}, {6, 7, 14, 15}, {54, 55, 62, 63},
	}},
	Tee: {Name: Tee, Groups: [][]int{
		{0, 1, 8, 9}, {3, 4, 11, 12}, {6, 7, 14, 15}, {27, 28, 35, 36}, {51, 52, 59, 60},
	}},
	Hex: {Name: Hex, Groups: [][]int{
		{3}, {10}, {12}, {17}, {21}, {24}, {30}, {33}, {37}, {42}, {44}, {51},
	}},
	Q16: {Name: Q16, Groups: [][]int{
		{63}, {54}, {61}, {52}, {59}, {50}, {57}, {48},
		{7}, {14}, {5}, {12}, {3}, {10}, {1}, {8},
	}},
}

// Get returns the named layout.
func Get(name Name) (Layout, error) {
	l, ok := layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown layout %q", name)
	}
	return l, nil
}

// ParseName accepts the layout names and their common aliases.
func ParseName(s string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bowtie", "bow", "tie", "qx5", "ibm_qx5":
		return Bowtie, nil
	case "tee", "qx5t", "ibm_qx5t":
		return Tee, nil
	case "hex", "qhex", "ibm_qhex":
		return Hex, nil
	case "q16", "d16", "16", "qx16", "ibm_qx16":
		return Q16, nil
	}
	return "", fmt.Errorf("unknown layout %q (want bowtie, tee, hex or q16)", s)
}

// Len is the number of qubits the layout shows.
func (l Layout) Len() int { return len(l.Groups) }

// Mask returns every pixel index the layout uses.
func (l Layout) Mask() []int {
	var out []int
	for _, g := range l.Groups {
		out = append(out, g...)
	}
	return out
}

// Render draws pattern on the layout. A '1' is blue; any other character is
// red for measured qubits and dim purple for groups at or beyond measured,
// which the circuit does not use.
func (l Layout) Render(pattern domain.Pattern, measured int) domain.Frame {
	var f domain.Frame
	p := pattern.Pad(l.Len())
	for q, group := range l.Groups {
		c := domain.Red
		switch {
		case p[q] == '1':
			c = domain.Blue
		case q >= measured:
			c = domain.Purple
		}
		for _, i := range group {
			f[i] = c
		}
	}
	return f
}

// Choice is the layout the operator asked for.
type Choice struct {
	Tee bool
	Hex bool
	Q16 bool
}

// ChoiceFor converts a layout name into a Choice.
func ChoiceFor(name Name) Choice {
	return Choice{Tee: name == Tee, Hex: name == Hex, Q16: name == Q16}
}

// Select picks the layout for a circuit of qubits qubits and returns it with
// its all-zero starting pattern.
func Select(qubits int, c Choice) (Layout, domain.Pattern) {
	var l Layout
	switch {
	case (qubits > 5 && !c.Hex) || c.Q16:
		l = layouts[Q16]
	case c.Tee && qubits <= 5:
		l = layouts[Tee]
	case c.Hex:
		l = layouts[Hex]
	default:
		l = layouts[Bowtie]
	}
	return l, domain.Zeros(l.Len())
}
