// SPDX-License-Identifier: EPL-2.0

package modelfile

// Document is the decoded form of a model file, shared by the CUE and TOML
// loaders. Field semantics follow cmdmodel; behavior fields (handlers,
// hooks, converters, error targets) are names resolved by Compile.
type Document struct {
	// Command is the root of the command tree.
	Command CommandDoc `json:"command" toml:"command"`

	// Globals is the shared option set, honored on the root command only.
	Globals []ParamDoc `json:"globals,omitempty" toml:"globals,omitempty"`
}

type (
	// CommandDoc is one node of the declared command tree.
	CommandDoc struct {
		Name        string        `json:"name" toml:"name"`
		Aliases     []string      `json:"aliases,omitempty" toml:"aliases,omitempty"`
		Description string        `json:"description,omitempty" toml:"description,omitempty"`
		Hidden      bool          `json:"hidden,omitempty" toml:"hidden,omitempty"`
		Commands    []CommandDoc  `json:"commands,omitempty" toml:"commands,omitempty"`
		Actions     []ActionDoc   `json:"actions,omitempty" toml:"actions,omitempty"`
		Hooks       []HookDoc     `json:"hooks,omitempty" toml:"hooks,omitempty"`
		ExitCodes   []ExitCodeDoc `json:"exit_codes,omitempty" toml:"exit_codes,omitempty"`
	}

	// ActionDoc declares one invocable action. Exactly one of Handler (a
	// bound Go function name) or Script (an inline shell script for the
	// script runtime) must be set.
	ActionDoc struct {
		Name        string        `json:"name" toml:"name"`
		Aliases     []string      `json:"aliases,omitempty" toml:"aliases,omitempty"`
		Description string        `json:"description,omitempty" toml:"description,omitempty"`
		Hidden      bool          `json:"hidden,omitempty" toml:"hidden,omitempty"`
		Primary     bool          `json:"primary,omitempty" toml:"primary,omitempty"`
		Handler     string        `json:"handler,omitempty" toml:"handler,omitempty"`
		Script      string        `json:"script,omitempty" toml:"script,omitempty"`
		Params      []ParamDoc    `json:"params,omitempty" toml:"params,omitempty"`
		Hooks       []HookDoc     `json:"hooks,omitempty" toml:"hooks,omitempty"`
		ExitCodes   []ExitCodeDoc `json:"exit_codes,omitempty" toml:"exit_codes,omitempty"`
	}

	// ParamDoc declares one option or positional argument.
	ParamDoc struct {
		Name        string    `json:"name" toml:"name"`
		Kind        string    `json:"kind,omitempty" toml:"kind,omitempty"`
		Short       string    `json:"short,omitempty" toml:"short,omitempty"`
		Description string    `json:"description,omitempty" toml:"description,omitempty"`
		Required    bool      `json:"required,omitempty" toml:"required,omitempty"`
		Default     string    `json:"default,omitempty" toml:"default,omitempty"`
		Env         string    `json:"env,omitempty" toml:"env,omitempty"`
		Prompt      string    `json:"prompt,omitempty" toml:"prompt,omitempty"`
		Secure      bool      `json:"secure,omitempty" toml:"secure,omitempty"`
		Type        *TypeDoc  `json:"type,omitempty" toml:"type,omitempty"`
		Group       string    `json:"group,omitempty" toml:"group,omitempty"`
		Rules       []RuleDoc `json:"rules,omitempty" toml:"rules,omitempty"`
	}

	// TypeDoc names a value type. Absent types default to string.
	TypeDoc struct {
		Name string `json:"name" toml:"name"`
		// Members lists the legal values of enum and flags types.
		Members []string `json:"members,omitempty" toml:"members,omitempty"`
		// Converter names a registered custom converter.
		Converter string `json:"converter,omitempty" toml:"converter,omitempty"`
		// Elem is the element type of a list.
		Elem *TypeDoc `json:"elem,omitempty" toml:"elem,omitempty"`
	}

	// RuleDoc declares one validation rule; exactly one field is set.
	RuleDoc struct {
		Range   *RangeDoc `json:"range,omitempty" toml:"range,omitempty"`
		Pattern string    `json:"pattern,omitempty" toml:"pattern,omitempty"`
		Path    string    `json:"path,omitempty" toml:"path,omitempty"`
	}

	// RangeDoc bounds a numeric parameter, inclusive on both ends.
	RangeDoc struct {
		Min float64 `json:"min" toml:"min"`
		Max float64 `json:"max" toml:"max"`
	}

	// HookDoc attaches a named hook function to its owner.
	HookDoc struct {
		Phase   string `json:"phase" toml:"phase"`
		Order   int    `json:"order,omitempty" toml:"order,omitempty"`
		Handler string `json:"handler" toml:"handler"`
	}

	// ExitCodeDoc maps a named error target to a process exit code.
	ExitCodeDoc struct {
		Error string `json:"error" toml:"error"`
		Code  int    `json:"code" toml:"code"`
	}
)
