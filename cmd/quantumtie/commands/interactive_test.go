package commands

import (
	"io"
	"reflect"
	"testing"
)

type script struct {
	answers []string
	asked   int
}

func (s *script) Ask(string) (string, error) {
	if s.asked >= len(s.answers) {
		return "", io.EOF
	}
	a := s.answers[s.asked]
	s.asked++
	return a, nil
}

func (s *script) AskSecret(q string) (string, error) { return s.Ask(q) }
func (s *script) Pause(string) error { return nil }

func TestGuidedArgs(t *testing.T) {
	cases := []struct {
		name    string
		answers []string
		want    []string
	}{
		{"defaults", []string{"", "", ""}, []string{"--layout", "tee"}},
		{"five bowtie fake", []string{"5", "2", "1", "1"}, []string{"--layout", "bowtie", "--local"}},
		{"five real", []string{"", "hex", "2"}, []string{"--layout", "hex", "--backend", "least"}},
		{"five aer model", []string{"", "", "local", "3"}, []string{"--layout", "tee", "--backend", "aermodel"}},
		{"twelve rows aer", []string{"12", "2", "1", ""}, []string{"--file", "12", "--layout", "q16", "--backend", "aer"}},
		{"twelve noise", []string{"12", "", "1", "real"}, []string{"--file", "12", "--layout", "hex", "--backend", "aernoise"}},
		{"sixteen", []string{"16", "2"}, []string{"--file", "16", "--layout", "q16", "--backend", "least"}},
	}
	for _, c := range cases {
		got, err := guidedArgs(&script{answers: c.answers}, io.Discard)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s: args = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestGuidedArgs_EOF(t *testing.T) {
	if _, err := guidedArgs(&script{}, io.Discard); err == nil {
		t.Fatal("expected error when input ends")
	}
}

func TestExtraArgs(t *testing.T) {
	got, err := extraArgs(&script{answers: []string{"  -tee   -local "}})
	if err != nil || !reflect.DeepEqual(got, []string{"-tee", "-local"}) {
		t.Fatalf("extraArgs = %q, %v", got, err)
	}
}

func TestNamesSubcommand(t *testing.T) {
	root := rootCmd()
	if !namesSubcommand(root, []string{"--home", "/tmp/x", "env"}) {
		t.Fatal("env not recognised")
	}
	if namesSubcommand(root, []string{"-tee", "expt.qasm"}) {
		t.Fatal("demo args taken for a subcommand")
	}
}

func TestFlagTakesValue(t *testing.T) {
	takes := flagTakesValue(rootCmd())
	for flag, want := range map[string]bool{
		"--backend":  true,
		"-b":         true,
		"-p":         true,
		"--home":     true,
		"--local":    false,
		"-e":         false,
		"--unknown":  false,
		"--interval": true,
	} {
		if got := takes(flag); got != want {
			t.Fatalf("takesValue(%s) = %v, want %v", flag, got, want)
		}
	}
}
