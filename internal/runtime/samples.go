package runtime

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"quantumtie/internal/domain"
)

// decodeCounts turns sampler registers into bit-string counts. With several
// classical registers the bit strings are joined the way Qiskit prints
// counts: the last declared register leftmost. declared lists the register
// names in declaration order; registers it does not name follow in name
// order.
func decodeCounts(data map[string]register, declared []string) (domain.Counts, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("result has no classical registers")
	}
	names := registerOrder(data, declared)

	shots := len(data[names[0]].Samples)
	out := domain.Counts{}
	for i := 0; i < shots; i++ {
		var b strings.Builder
		for _, n := range names {
			reg := data[n]
			if i >= len(reg.Samples) {
				return nil, fmt.Errorf("register %s has %d samples, want %d", n, len(reg.Samples), shots)
			}
			bits, err := HexToBits(reg.Samples[i], reg.NumBits)
			if err != nil {
				return nil, fmt.Errorf("register %s: %w", n, err)
			}
			b.WriteString(bits)
		}
		out[b.String()]++
	}
	return out, nil
}

func registerOrder(data map[string]register, declared []string) []string {
	names := make([]string, 0, len(data))
	seen := make(map[string]bool, len(data))
	for i := len(declared) - 1; i >= 0; i-- {
		n := declared[i]
		if _, ok := data[n]; ok && !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}
	var rest []string
	for n := range data {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// HexToBits renders a "0x..." sample as a bit string of width bits.
func HexToBits(sample string, width int) (string, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(sample, "0x"), "0X")
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return "", fmt.Errorf("bad sample %q", sample)
	}
	bits := v.Text(2)
	if v.Sign() == 0 {
		bits = ""
	}
	if len(bits) > width {
		return "", fmt.Errorf("sample %q wider than %d bits", sample, width)
	}
	return strings.Repeat("0", width-len(bits)) + bits, nil
}
