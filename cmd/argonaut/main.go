// SPDX-License-Identifier: MPL-2.0

// Command argonaut runs declarative command models: it loads a CUE or TOML
// model file, binds the remaining argument vector against it, and executes
// the matched action's script in an embedded shell.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/argonaut-cli/argonaut/pkg/cobrabridge"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func main() {
	app, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "argonaut:", err)
		os.Exit(1)
	}

	err = fang.Execute(
		context.Background(),
		cobrabridge.Export(app.dispatcher, app.model),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		var exit *cobrabridge.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		os.Exit(1)
	}
}
