package commands

import (
	"reflect"
	"testing"
)

func valueFlags(flag string) bool {
	switch flag {
	case "--backend", "--file", "-b", "-f", "--passphrase", "-p":
		return true
	}
	return false
}

func TestTranslateLegacy(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{
			in:   []string{"-e", "-tee", "-local"},
			want: []string{"--emulator", "--layout", "tee", "--local"},
		},
		{
			in:   []string{"-b:ibm_torino", "-f:mycircuit.qasm", "-noq"},
			want: []string{"--backend", "ibm_torino", "--file", "mycircuit.qasm", "--no-logo"},
		},
		{
			in:   []string{"16", "hex", "-nois:heron_model"},
			want: []string{"--file", "16", "--layout", "hex", "--noise-model", "heron_model"},
		},
		{
			in:   []string{"-select", "-dual", "-neopixel", "-debug", "-nois"},
			want: []string{"--select", "--dual", "--neopixel", "--debug", "--noise", "--local"},
		},
		{
			// Values of modern flags are never translated.
			in:   []string{"--backend", "tee", "-p", "hex", "--file=16"},
			want: []string{"--backend", "tee", "-p", "hex", "--file=16"},
		},
		{
			// Whole-token matching: these are not legacy switches.
			in:   []string{"-selection", "mytee.qasm", "-e2"},
			want: []string{"-selection", "mytee.qasm", "-e2"},
		},
		{
			in:   []string{"env", "--", "tee"},
			want: []string{"env", "--", "tee"},
		},
	}
	for _, c := range cases {
		got := translateLegacy(c.in, valueFlags)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("translate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
