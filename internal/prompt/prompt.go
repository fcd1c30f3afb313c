// SPDX-License-Identifier: MPL-2.0

// Package prompt reads parameter values interactively when binding falls
// through to the prompt source. Prompting only happens when the input is a
// terminal; in pipes and CI the source is silently skipped.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks the user for a raw parameter value.
type Prompter interface {
	// Interactive reports whether prompting is possible at all.
	Interactive() bool
	// Ask displays the label and reads one line. secure suppresses echo.
	Ask(label string, secure bool) (string, error)
}

// Terminal prompts on a terminal device. The zero value is not usable; use
// New for the process's stdin/stderr or NewWithIO in tests.
type Terminal struct {
	in      *os.File
	out     io.Writer
	enabled bool
}

// New returns a Terminal prompter bound to the process's stdin and stderr.
// disabled forces Interactive() to false regardless of the device, for the
// no-prompt runtime toggle.
func New(disabled bool) *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stderr, enabled: !disabled}
}

// NewWithIO binds the prompter to an explicit device, for pty-backed tests.
func NewWithIO(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out, enabled: true}
}

// Interactive reports whether the input device is a terminal and prompting
// has not been disabled.
func (t *Terminal) Interactive() bool {
	return t.enabled && t.in != nil && term.IsTerminal(int(t.in.Fd()))
}

// Ask writes the label and reads a single line from the device. With secure
// set, the read suppresses echo and the newline is emitted manually.
func (t *Terminal) Ask(label string, secure bool) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	if secure {
		raw, err := term.ReadPassword(int(t.in.Fd()))
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("secure prompt failed: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("prompt read failed: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
