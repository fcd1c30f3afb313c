// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// render is swappable in tests to avoid exercising the markdown pipeline.
var render = glamour.Render

// catalog maps each diagnostic kind to markdown remediation text. Shown only
// in explain mode; the plain one-line Diagnostic message is always printed.
var catalog = map[Kind]string{
	UnknownCommand: `The first argument did not match any top-level command or alias.
Run the program without arguments to list the available commands, or check
the suggestions above for a likely typo.`,
	UnknownAction: `The resolved command exists, but the next argument matched none of its
actions. List the command's actions with its help output, or check the
suggestions above.`,
	NoActionSpecified: `The command defines several actions and none of them is marked as the
default, so an action name must be given explicitly.`,
	UnknownOption: `An option was supplied that the target action does not declare.
Options are matched exactly: long options as ` + "`--name`" + `, short options as a
single ` + "`-c`" + ` character.`,
	MissingRequiredParameter: `A required parameter received no value from the command line, its
environment variable, an interactive prompt, or a declared default. Supply
it as shown in the message above.`,
	ConversionFailure: `The raw value could not be converted to the parameter's declared type.
Numeric parameters accept decimal notation, booleans accept true/false,
enums accept any declared member name (case-insensitive).`,
	ValidationFailure: `The value converted cleanly but failed a declared constraint (range,
pattern, or path existence). The failing rule is named in the message.`,
	MutualExclusionConflict: `Two or more options from the same exclusive group were given values.
Pick exactly one of the conflicting options.`,
	UnexpectedArgument: `More positional arguments were supplied than the action declares.`,
	ExecutionCancelled: `A before-hook cancelled the invocation; the action itself never ran.
The cancellation message above states the reason.`,
	ExecutionFailed: `The action (or one of its error-hooks) reported an error that no
error-hook handled.`,
}

// Explain renders the remediation entry for a kind using the given glamour
// style path ("dark", "light", "notty", ...).
func Explain(kind Kind, stylePath string) (string, error) {
	md, ok := catalog[kind]
	if !ok {
		return "", fmt.Errorf("no catalog entry for %s", kind)
	}
	return render("## "+kind.String()+"\n\n"+md, stylePath)
}

// Kinds returns every catalogued kind in ascending order.
func Kinds() []Kind {
	ks := maps.Keys(catalog)
	slices.Sort(ks)
	return ks
}
