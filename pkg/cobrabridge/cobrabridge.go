// SPDX-License-Identifier: EPL-2.0

// Package cobrabridge exports a command model as a spf13/cobra command tree
// for incremental migration of existing cobra programs. Cobra contributes
// its surface (command routing, help, completion); flag parsing is disabled
// per command and every execution re-enters the dispatcher, so binding
// precedence, validation, and the hook lifecycle stay with the engine.
package cobrabridge

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
	"github.com/argonaut-cli/argonaut/pkg/dispatch"
)

// ExitError carries a non-zero dispatch exit code out of a cobra Execute
// call, since cobra's RunE contract has no code channel.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// Export builds the cobra tree for root, delegating execution to d. The
// dispatcher must have been built over the same model.
func Export(d *dispatch.Dispatcher, root *cmdmodel.Command) *cobra.Command {
	return export(d, root, nil)
}

func export(d *dispatch.Dispatcher, node *cmdmodel.Command, path []string) *cobra.Command {
	c := &cobra.Command{
		Use:     node.Name,
		Aliases: node.Aliases,
		Short:   node.Description,
		Hidden:  node.Hidden,
		// The dispatcher owns parsing; cobra only routes.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
	}

	if len(node.Actions) > 0 || len(path) == 0 {
		c.RunE = func(cmd *cobra.Command, args []string) error {
			argv := append(append([]string{}, path...), args...)
			code, err := d.DispatchE(cmd.Context(), argv)
			if err != nil {
				return err
			}
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		}
	}

	for _, child := range node.Children {
		c.AddCommand(export(d, child, append(append([]string{}, path...), child.Name)))
	}
	return c
}
