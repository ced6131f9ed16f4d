package layout

import (
	"fmt"

	"quantumtie/internal/domain"
)

// Glyphs, drawn with X for white and O for black.
var (
	Off = mustGlyph(
		"OOOOOOOO",
		"OXOXXOXX",
		"XOXXOOXO",
		"XOXXXOXX",
		"XOXXOOXO",
		"OXOXOOXO",
		"OOOOOOOO",
		"OOOOOOOO",
	)
	QLogo = mustGlyph(
		"OOOXXOOO",
		"OOXOOXOO",
		"OOXOOXOO",
		"OOXOOXOO",
		"OOXOOXOO",
		"OOOXXOOO",
		"OOOOXOOO",
		"OOOXXOOO",
	)
	QArcs = mustGlyph(
		"OOOOOOXO",
		"OOOOXXXX",
		"OOXXOOXO",
		"OOXOOOXO",
		"OXOOOXXO",
		"OXOOXXOO",
		"XXXXOOOO",
		"OXOOOOOO",
	)
	QKLogo = mustGlyph(
		"OOXXXXOO",
		"OXXOOXXO",
		"XXXOOXXX",
		"XXOXXOXX",
		"XXOOOOXX",
		"XOXXXXOX",
		"OXOOOOXO",
		"OOXXXXOO",
	)
	QHex = mustGlyph(
		"OOOXOOOO",
		"OOXOXOOO",
		"OXOOOXOO",
		"XOOOOOXO",
		"OXOOOXOO",
		"OOXOXOOO",
		"OOOXOOOO",
		"OOOOOOOO",
	)
	Arrow = mustGlyph(
		"OOOXOOOO",
		"OOXXXOOO",
		"OXOXOXOO",
		"XOOXOOXO",
		"OOOXOOOO",
		"OOOXOOOO",
		"OOOXOOOO",
		"OOOXOOOO",
	)
)

// Animation masks: the pixels the rainbow lights while thinking.
var (
	QLogoMask  = []int{3, 4, 10, 13, 18, 21, 26, 29, 34, 37, 43, 44, 52, 59, 60}
	QArcsMask  = []int{6, 12, 13, 14, 15, 18, 19, 22, 26, 30, 33, 37, 41, 44, 45, 48, 49, 50, 51, 57}
	QKLogoMask = []int{
		2, 3, 4, 5, 9, 10, 13, 14, 16, 17, 18, 21, 22, 23, 24, 25, 27, 28,
		31, 32, 33, 38, 39, 40, 42, 43, 44, 45, 47, 49, 54, 58, 59, 60, 61,
	}
)

// Glyph parses eight rows of X/O into a white-on-black frame.
func Glyph(rows ...string) (domain.Frame, error) {
	var f domain.Frame
	if len(rows) != 8 {
		return f, fmt.Errorf("glyph needs 8 rows, got %d", len(rows))
	}
	for y, row := range rows {
		if len(row) != 8 {
			return f, fmt.Errorf("glyph row %d has %d columns", y, len(row))
		}
		for x, ch := range row {
			switch ch {
			case 'X':
				f[y*8+x] = domain.White
			case 'O':
			default:
				return f, fmt.Errorf("glyph row %d: unexpected %q", y, ch)
			}
		}
	}
	return f, nil
}

func mustGlyph(rows ...string) domain.Frame {
	f, err := Glyph(rows...)
	if err != nil {
		panic(err)
	}
	return f
}
