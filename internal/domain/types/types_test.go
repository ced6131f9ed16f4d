package types_test

import (
	"testing"

	"quantumtie/internal/domain/types"
)

func TestCounts_Max_PicksMostFrequent(t *testing.T) {
	c := types.Counts{"00000": 12, "10101": 300, "11111": 188}
	p, n := c.Max()
	if p != "10101" || n != 300 {
		t.Fatalf("max = %q/%d, want 10101/300", p, n)
	}
	if c.Shots() != 500 {
		t.Fatalf("shots = %d, want 500", c.Shots())
	}
}

func TestCounts_Max_TieIsLexicographic(t *testing.T) {
	c := types.Counts{"11": 5, "01": 5, "10": 1}
	if p, _ := c.Max(); p != "01" {
		t.Fatalf("tie resolved to %q, want 01", p)
	}
	if p, n := (types.Counts{}).Max(); p != "" || n != 0 {
		t.Fatalf("empty counts = %q/%d", p, n)
	}
}

func TestPattern_Pad(t *testing.T) {
	if got := types.Pattern("101").Pad(5); got != "10100" {
		t.Fatalf("pad = %q", got)
	}
	if got := types.Pattern("101101").Pad(5); got != "101101" {
		t.Fatalf("long pattern changed: %q", got)
	}
	if got := types.Zeros(4); got != "0000" {
		t.Fatalf("zeros = %q", got)
	}
}

func TestFrame_Rotate(t *testing.T) {
	var f types.Frame
	f[0] = types.Red // top-left

	cases := map[int]int{0: 0, 90: 7, 180: 63, 270: 56}
	for angle, want := range cases {
		got := f.Rotate(angle)
		if got[want] != types.Red {
			t.Fatalf("angle %d: red not at %d", angle, want)
		}
	}

	g := f.Rotate(90).Rotate(90).Rotate(90).Rotate(90)
	if g != f {
		t.Fatal("four quarter turns should be identity")
	}
}

func TestJobStatus_Final(t *testing.T) {
	for _, s := range []types.JobStatus{types.JobDone, types.JobCancelled, types.JobError} {
		if !s.Final() {
			t.Fatalf("%s should be final", s)
		}
	}
	for _, s := range []types.JobStatus{types.JobQueued, types.JobRunning, types.JobValidating} {
		if s.Final() {
			t.Fatalf("%s should not be final", s)
		}
	}
}
