package prompt_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"quantumtie/internal/prompt"
)

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	p := &prompt.Terminal{In: strings.NewReader("  yes \nsecret\n\nlast"), Out: &out}

	if got, err := p.Ask("Store? "); err != nil || got != "yes" {
		t.Fatalf("Ask = %q, %v", got, err)
	}
	if got, err := p.AskSecret("Token: "); err != nil || got != "secret" {
		t.Fatalf("AskSecret = %q, %v", got, err)
	}
	if err := p.Pause(""); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if got, err := p.Ask("? "); err != nil || got != "last" {
		t.Fatalf("unterminated line = %q, %v", got, err)
	}
	if !strings.Contains(out.String(), "Store? Token: Press Enter") {
		t.Fatalf("prompts = %q", out.String())
	}
}

func TestAsk_EOF(t *testing.T) {
	p := &prompt.Terminal{In: strings.NewReader(""), Out: io.Discard}
	if _, err := p.Ask("? "); err != io.EOF {
		t.Fatalf("err = %v, want EOF", err)
	}
	if err := p.Pause("wait"); err != nil {
		t.Fatalf("Pause at EOF: %v", err)
	}
}
