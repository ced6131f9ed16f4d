package types

import (
	"sort"
	"strings"
)

// Pattern is a measured bit string such as "01101". Character i belongs to
// layout group i.
type Pattern string

// String returns the string form of the pattern.
func (p Pattern) String() string { return string(p) }

// Pad right-pads p with '0' up to n characters. Longer patterns are kept.
func (p Pattern) Pad(n int) Pattern {
	if len(p) >= n {
		return p
	}
	return p + Pattern(strings.Repeat("0", n-len(p)))
}

// Zeros returns an all-zero pattern of length n.
func Zeros(n int) Pattern { return Pattern(strings.Repeat("0", n)) }

// Counts maps measured bit strings to the number of shots that produced them.
type Counts map[string]int

// Max returns the most frequent pattern and its count. Ties go to the
// lexicographically smallest pattern; an empty map returns ("", 0).
func (c Counts) Max() (Pattern, int) {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		best  string
		count int
	)
	for _, k := range keys {
		if c[k] > count {
			best, count = k, c[k]
		}
	}
	return Pattern(best), count
}

// Shots returns the total number of shots recorded.
func (c Counts) Shots() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
