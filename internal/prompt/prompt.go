// Package prompt reads operator answers from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"quantumtie/internal/domain"
)

// Terminal prompts on Out and reads lines from In. Secrets are read without
// echo when In is a terminal.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	once sync.Once
	r    *bufio.Reader
}

// New returns a Terminal on stdin/stdout.
func New() *Terminal { return &Terminal{In: os.Stdin, Out: os.Stdout} }

func (t *Terminal) reader() *bufio.Reader {
	t.once.Do(func() { t.r = bufio.NewReader(t.In) })
	return t.r
}

func (t *Terminal) line() (string, error) {
	s, err := t.reader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// Ask prints question and returns the trimmed answer.
func (t *Terminal) Ask(question string) (string, error) {
	fmt.Fprint(t.Out, question)
	return t.line()
}

// AskSecret is Ask without echo.
func (t *Terminal) AskSecret(question string) (string, error) {
	fmt.Fprint(t.Out, question)
	if f, ok := t.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(t.Out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}
	return t.line()
}

// Pause waits for Enter.
func (t *Terminal) Pause(message string) error {
	if message == "" {
		message = "Press Enter to continue"
	}
	fmt.Fprint(t.Out, message)
	_, err := t.line()
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

var _ domain.Prompter = (*Terminal)(nil)
