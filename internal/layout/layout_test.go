package layout_test

import (
	"testing"

	"quantumtie/internal/domain"
	"quantumtie/internal/layout"
)

func TestRender_Bowtie_Colours(t *testing.T) {
	l, err := layout.Get(layout.Bowtie)
	if err != nil {
		t.Fatalf("get layout: %v", err)
	}
	f := l.Render("10", 3)

	// qubit 0 measured 1 -> blue
	for _, i := range l.Groups[0] {
		if f[i] != domain.Blue {
			t.Fatalf("pixel %d = %v, want blue", i, f[i])
		}
	}
	// qubit 1 measured 0 -> red
	if f[l.Groups[1][0]] != domain.Red {
		t.Fatalf("qubit 1 should be red")
	}
	// qubits 3 and 4 are outside the circuit -> purple
	if f[l.Groups[3][0]] != domain.Purple || f[l.Groups[4][3]] != domain.Purple {
		t.Fatalf("unused qubits should be purple")
	}
	// pixels outside the layout stay black
	if f[0] != domain.Black {
		t.Fatalf("pixel 0 should be black")
	}
}

func TestSelect(t *testing.T) {
	cases := []struct {
		name   string
		qubits int
		choice layout.Choice
		want   layout.Name
		zeros  int
	}{
		{"default five", 5, layout.Choice{}, layout.Bowtie, 5},
		{"tee", 5, layout.Choice{Tee: true}, layout.Tee, 5},
		{"tee too wide", 7, layout.Choice{Tee: true}, layout.Q16, 16},
		{"hex", 12, layout.Choice{Hex: true}, layout.Hex, 12},
		{"hex small", 3, layout.Choice{Hex: true}, layout.Hex, 12},
		{"sixteen forced", 2, layout.Choice{Q16: true}, layout.Q16, 16},
		{"wide circuit", 16, layout.Choice{}, layout.Q16, 16},
	}
	for _, tc := range cases {
		l, p := layout.Select(tc.qubits, tc.choice)
		if l.Name != tc.want {
			t.Fatalf("%s: layout %s, want %s", tc.name, l.Name, tc.want)
		}
		if len(p) != tc.zeros || p != domain.Zeros(tc.zeros) {
			t.Fatalf("%s: pattern %q", tc.name, p)
		}
	}
}

func TestParseName_Aliases(t *testing.T) {
	for in, want := range map[string]layout.Name{
		"":        layout.Bowtie,
		"tie":     layout.Bowtie,
		"TEE":     layout.Tee,
		"qhex":    layout.Hex,
		"d16":     layout.Q16,
		"ibm_qx5": layout.Bowtie,
	} {
		got, err := layout.ParseName(in)
		if err != nil || got != want {
			t.Fatalf("ParseName(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := layout.ParseName("octagon"); err == nil {
		t.Fatal("expected error for unknown layout")
	}
}

func TestGlyph_Parse(t *testing.T) {
	if layout.Arrow[3] != domain.White || layout.Arrow[0] != domain.Black {
		t.Fatalf("arrow glyph parsed incorrectly")
	}
	if _, err := layout.Glyph("XXXX"); err == nil {
		t.Fatal("expected error for short glyph")
	}
	rows := []string{"OOOOOOOO", "OOOOOOOO", "OOOOOOOO", "OOOOOOOO", "OOOOOOOO", "OOOOOOOO", "OOOOOOOO", "OOOOOOO?"}
	if _, err := layout.Glyph(rows...); err == nil {
		t.Fatal("expected error for bad character")
	}
}

func TestMasks_InRange(t *testing.T) {
	masks := [][]int{layout.QLogoMask, layout.QArcsMask, layout.QKLogoMask}
	for _, name := range []layout.Name{layout.Bowtie, layout.Tee, layout.Hex, layout.Q16} {
		l, _ := layout.Get(name)
		masks = append(masks, l.Mask())
	}
	for _, m := range masks {
		for _, i := range m {
			if i < 0 || i >= domain.FrameSize {
				t.Fatalf("mask index %d out of range", i)
			}
		}
	}
}
