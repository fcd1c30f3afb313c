// SPDX-License-Identifier: EPL-2.0

package modelfile

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
	"github.com/argonaut-cli/argonaut/pkg/validate"
)

// Compile sentinels. Every compile error wraps one of these.
var (
	// ErrUnboundName means a document referenced a handler, hook, or error
	// target that the Bindings do not provide.
	ErrUnboundName = errors.New("unbound name")
	// ErrBadDocument means the document is structurally unusable in a way
	// the schema cannot express.
	ErrBadDocument = errors.New("bad model document")
)

// Bindings supplies the behavior a document can only name. Nil maps are
// treated as empty.
type Bindings struct {
	// Handlers resolves ActionDoc.Handler.
	Handlers map[string]cmdmodel.ActionFunc
	// Before, After, OnError resolve HookDoc.Handler per phase.
	Before  map[string]cmdmodel.BeforeFunc
	After   map[string]cmdmodel.AfterFunc
	OnError map[string]cmdmodel.ErrorFunc
	// Errors resolves ExitCodeDoc.Error targets.
	Errors map[string]error
	// Script builds an action handler from an inline script. Required when
	// the document uses script actions.
	Script func(script string) cmdmodel.ActionFunc
}

// Compile resolves a document against its bindings and returns a validated
// command tree ready for dispatch.New.
func Compile(doc *Document, b Bindings) (*cmdmodel.Command, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrBadDocument)
	}
	root, err := compileCommand(&doc.Command, b)
	if err != nil {
		return nil, err
	}
	root.Globals, err = compileParams(doc.Globals, b)
	if err != nil {
		return nil, fmt.Errorf("globals: %w", err)
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	return root, nil
}

func compileCommand(doc *CommandDoc, b Bindings) (*cmdmodel.Command, error) {
	c := &cmdmodel.Command{
		Name:        doc.Name,
		Aliases:     doc.Aliases,
		Description: doc.Description,
		Hidden:      doc.Hidden,
	}

	var err error
	if c.Hooks, err = compileHooks(doc.Hooks, b); err != nil {
		return nil, fmt.Errorf("command %q: %w", doc.Name, err)
	}
	if c.ExitCodes, err = compileExitCodes(doc.ExitCodes, b); err != nil {
		return nil, fmt.Errorf("command %q: %w", doc.Name, err)
	}

	for i := range doc.Commands {
		child, err := compileCommand(&doc.Commands[i], b)
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, child)
	}
	for i := range doc.Actions {
		action, err := compileAction(&doc.Actions[i], b)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", doc.Name, err)
		}
		c.Actions = append(c.Actions, action)
	}
	return c, nil
}

func compileAction(doc *ActionDoc, b Bindings) (*cmdmodel.Action, error) {
	a := &cmdmodel.Action{
		Name:        doc.Name,
		Aliases:     doc.Aliases,
		Description: doc.Description,
		Hidden:      doc.Hidden,
		Primary:     doc.Primary,
	}

	switch {
	case doc.Handler != "" && doc.Script != "":
		return nil, fmt.Errorf("%w: action %q declares both handler and script", ErrBadDocument, doc.Name)
	case doc.Handler != "":
		fn, ok := b.Handlers[doc.Handler]
		if !ok {
			return nil, fmt.Errorf("%w: handler %q of action %q", ErrUnboundName, doc.Handler, doc.Name)
		}
		a.Run = fn
	case doc.Script != "":
		if b.Script == nil {
			return nil, fmt.Errorf("%w: action %q needs a script runtime", ErrUnboundName, doc.Name)
		}
		a.Run = b.Script(doc.Script)
	default:
		return nil, fmt.Errorf("%w: action %q declares neither handler nor script", ErrBadDocument, doc.Name)
	}

	var err error
	if a.Params, err = compileParams(doc.Params, b); err != nil {
		return nil, fmt.Errorf("action %q: %w", doc.Name, err)
	}
	if a.Hooks, err = compileHooks(doc.Hooks, b); err != nil {
		return nil, fmt.Errorf("action %q: %w", doc.Name, err)
	}
	if a.ExitCodes, err = compileExitCodes(doc.ExitCodes, b); err != nil {
		return nil, fmt.Errorf("action %q: %w", doc.Name, err)
	}
	return a, nil
}

func compileParams(docs []ParamDoc, b Bindings) ([]*cmdmodel.Param, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	params := make([]*cmdmodel.Param, 0, len(docs))
	for i := range docs {
		p, err := compileParam(&docs[i], b)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func compileParam(doc *ParamDoc, b Bindings) (*cmdmodel.Param, error) {
	kind := cmdmodel.Option
	switch doc.Kind {
	case "", "option":
	case "argument":
		kind = cmdmodel.Argument
	default:
		return nil, fmt.Errorf("%w: parameter %q kind %q", ErrBadDocument, doc.Name, doc.Kind)
	}

	t, err := compileType(doc.Type)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", doc.Name, err)
	}
	rules, err := compileRules(doc.Rules)
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", doc.Name, err)
	}

	return &cmdmodel.Param{
		Kind:           kind,
		Name:           doc.Name,
		Short:          doc.Short,
		Description:    doc.Description,
		Required:       doc.Required,
		Default:        doc.Default,
		EnvVar:         doc.Env,
		Prompt:         doc.Prompt,
		Secure:         doc.Secure,
		Type:           t,
		ExclusiveGroup: doc.Group,
		Rules:          rules,
	}, nil
}

func compileType(doc *TypeDoc) (cmdmodel.TypeDescriptor, error) {
	if doc == nil {
		return cmdmodel.String(), nil
	}
	switch doc.Name {
	case "string":
		return cmdmodel.String(), nil
	case "bool":
		return cmdmodel.Bool(), nil
	case "int":
		return cmdmodel.Int(), nil
	case "float":
		return cmdmodel.Float(), nil
	case "duration":
		return cmdmodel.Duration(), nil
	case "timestamp":
		return cmdmodel.Timestamp(), nil
	case "uuid":
		return cmdmodel.UUID(), nil
	case "url":
		return cmdmodel.URL(), nil
	case "ip":
		return cmdmodel.IP(), nil
	case "enum":
		return cmdmodel.Enum(doc.Members...), nil
	case "flags":
		return cmdmodel.FlagsEnum(doc.Members...), nil
	case "custom":
		return cmdmodel.Custom(doc.Converter), nil
	case "list":
		elem, err := compileType(doc.Elem)
		if err != nil {
			return cmdmodel.TypeDescriptor{}, err
		}
		return cmdmodel.ListOf(elem), nil
	default:
		return cmdmodel.TypeDescriptor{}, fmt.Errorf("%w: type %q", ErrBadDocument, doc.Name)
	}
}

func compileRules(docs []RuleDoc) ([]validate.Rule, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	rules := make([]validate.Rule, 0, len(docs))
	for _, doc := range docs {
		switch {
		case doc.Range != nil:
			rules = append(rules, validate.Range(doc.Range.Min, doc.Range.Max))
		case doc.Pattern != "":
			if _, err := regexp.Compile(doc.Pattern); err != nil {
				return nil, fmt.Errorf("%w: pattern rule: %v", ErrBadDocument, err)
			}
			rules = append(rules, validate.Pattern(doc.Pattern))
		case doc.Path != "":
			mode, err := pathMode(doc.Path)
			if err != nil {
				return nil, err
			}
			rules = append(rules, validate.PathExists(mode))
		default:
			return nil, fmt.Errorf("%w: empty rule", ErrBadDocument)
		}
	}
	return rules, nil
}

func pathMode(s string) (validate.PathMode, error) {
	switch s {
	case "any":
		return validate.PathAny, nil
	case "file":
		return validate.PathFile, nil
	case "dir":
		return validate.PathDir, nil
	default:
		return 0, fmt.Errorf("%w: path rule mode %q", ErrBadDocument, s)
	}
}

func compileHooks(docs []HookDoc, b Bindings) ([]cmdmodel.Hook, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	hooks := make([]cmdmodel.Hook, 0, len(docs))
	for _, doc := range docs {
		h := cmdmodel.Hook{Order: doc.Order}
		switch doc.Phase {
		case "before":
			fn, ok := b.Before[doc.Handler]
			if !ok {
				return nil, fmt.Errorf("%w: before-hook %q", ErrUnboundName, doc.Handler)
			}
			h.Phase, h.Before = cmdmodel.PhaseBefore, fn
		case "after":
			fn, ok := b.After[doc.Handler]
			if !ok {
				return nil, fmt.Errorf("%w: after-hook %q", ErrUnboundName, doc.Handler)
			}
			h.Phase, h.After = cmdmodel.PhaseAfter, fn
		case "on_error":
			fn, ok := b.OnError[doc.Handler]
			if !ok {
				return nil, fmt.Errorf("%w: error-hook %q", ErrUnboundName, doc.Handler)
			}
			h.Phase, h.OnError = cmdmodel.PhaseOnError, fn
		default:
			return nil, fmt.Errorf("%w: hook phase %q", ErrBadDocument, doc.Phase)
		}
		hooks = append(hooks, h)
	}
	return hooks, nil
}

func compileExitCodes(docs []ExitCodeDoc, b Bindings) ([]cmdmodel.ExitCodeMapping, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	mappings := make([]cmdmodel.ExitCodeMapping, 0, len(docs))
	for _, doc := range docs {
		target, ok := b.Errors[doc.Error]
		if !ok {
			return nil, fmt.Errorf("%w: exit-code target %q", ErrUnboundName, doc.Error)
		}
		mappings = append(mappings, cmdmodel.ExitCodeMapping{Target: target, Code: doc.Code})
	}
	return mappings, nil
}
