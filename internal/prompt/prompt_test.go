// SPDX-License-Identifier: MPL-2.0

package prompt

import (
	"bytes"
	"os"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

func TestTerminal_NotInteractiveOnPipe(t *testing.T) {
	t.Parallel()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	p := NewWithIO(r, &bytes.Buffer{})
	if p.Interactive() {
		t.Error("pipe reported as interactive")
	}
}

func TestTerminal_DisabledOverridesDevice(t *testing.T) {
	t.Parallel()

	p := New(true)
	if p.Interactive() {
		t.Error("disabled prompter reported as interactive")
	}
}

func TestTerminal_AskOnPty(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("pty not available on windows")
	}

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	var out bytes.Buffer
	p := NewWithIO(tty, &out)
	if !p.Interactive() {
		t.Fatal("pty slave not reported as interactive")
	}

	errCh := make(chan error, 1)
	got := make(chan string, 1)
	go func() {
		v, err := p.Ask("Environment", false)
		got <- v
		errCh <- err
	}()

	// Give the reader a moment to issue the prompt before typing.
	time.Sleep(50 * time.Millisecond)
	if _, err := ptmx.WriteString("staging\n"); err != nil {
		t.Fatal(err)
	}

	select {
	case v := <-got:
		if err := <-errCh; err != nil {
			t.Fatalf("Ask error = %v", err)
		}
		if v != "staging" {
			t.Errorf("Ask = %q, want staging", v)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Ask did not return")
	}

	if !strings.Contains(out.String(), "Environment:") {
		t.Errorf("prompt label not written, got %q", out.String())
	}
}
