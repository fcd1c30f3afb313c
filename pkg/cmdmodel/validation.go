// SPDX-License-Identifier: EPL-2.0

package cmdmodel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidModel is the sentinel error wrapped by every model validation
// failure, for errors.Is() compatibility.
var ErrInvalidModel = errors.New("invalid command model")

func modelErrf(path, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidModel, path, fmt.Sprintf(format, args...))
}

// Validate checks the structural invariants of the command tree rooted at c.
// Call it once after construction, before handing the tree to a dispatcher;
// dispatch assumes a validated, immutable tree.
func (c *Command) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: root command is nil", ErrInvalidModel)
	}
	seenAliases := map[string]string{}
	visited := map[*Command]bool{}
	for _, p := range c.Globals {
		if p.Kind != Option {
			return modelErrf(c.Name, "global parameter '%s' must be an option", p.Name)
		}
	}
	if err := validateParams(c.Name+" (globals)", c.Globals); err != nil {
		return err
	}
	// Global option names and shorts are reserved across the whole tree:
	// global tokens are extracted before action binding, so a redeclaring
	// action would never see its own option.
	reserved := map[string]string{}
	for _, p := range c.Globals {
		reserved[strings.ToLower(p.Name)] = p.Name
		if p.Short != "" {
			reserved["-"+p.Short] = p.Name
		}
	}
	return c.validateNode(c.Name, seenAliases, visited, reserved)
}

func (c *Command) validateNode(path string, aliases map[string]string, visited map[*Command]bool, reserved map[string]string) error {
	if visited[c] {
		return modelErrf(path, "command tree contains a cycle")
	}
	visited[c] = true

	if strings.TrimSpace(c.Name) == "" {
		return modelErrf(path, "command name must not be empty")
	}
	for _, alias := range c.Aliases {
		key := strings.ToLower(alias)
		if owner, dup := aliases[key]; dup {
			return modelErrf(path, "alias '%s' already used by '%s'", alias, owner)
		}
		aliases[key] = path
	}

	// Sibling children (and their aliases) must not collide case-insensitively.
	names := map[string]string{}
	for _, child := range c.Children {
		for _, n := range append([]string{child.Name}, child.Aliases...) {
			key := strings.ToLower(n)
			if owner, dup := names[key]; dup {
				return modelErrf(path, "child name '%s' collides with '%s'", n, owner)
			}
			names[key] = child.Name
		}
	}

	actionNames := map[string]string{}
	primaries := 0
	for _, a := range c.Actions {
		if strings.TrimSpace(a.Name) == "" {
			return modelErrf(path, "action name must not be empty")
		}
		if a.Primary {
			primaries++
		}
		apath := path + " " + a.Name
		for _, n := range append([]string{a.Name}, a.Aliases...) {
			key := strings.ToLower(n)
			if owner, dup := actionNames[key]; dup {
				return modelErrf(path, "action name '%s' collides with '%s'", n, owner)
			}
			actionNames[key] = a.Name
		}
		if a.Run == nil {
			return modelErrf(apath, "action has no handler")
		}
		if err := validateParams(apath, a.Params); err != nil {
			return err
		}
		for _, p := range a.Params {
			if p.Kind != Option {
				continue
			}
			if owner, taken := reserved[strings.ToLower(p.Name)]; taken {
				return modelErrf(apath, "option '--%s' redeclares global option '--%s'", p.Name, owner)
			}
			if p.Short != "" {
				if owner, taken := reserved["-"+p.Short]; taken {
					return modelErrf(apath, "short name '-%s' redeclares the short of global option '--%s'", p.Short, owner)
				}
			}
		}
		if err := validateHooks(apath, a.Hooks); err != nil {
			return err
		}
	}
	if primaries > 1 {
		return modelErrf(path, "at most one action may be primary, found %d", primaries)
	}

	if err := validateHooks(path, c.Hooks); err != nil {
		return err
	}

	for _, child := range c.Children {
		if len(child.Globals) > 0 {
			return modelErrf(path+" "+child.Name, "globals are only honored on the root command")
		}
		if err := child.validateNode(path+" "+child.Name, aliases, visited, reserved); err != nil {
			return err
		}
	}
	return nil
}

func validateParams(path string, params []*Param) error {
	optionNames := map[string]bool{}
	shorts := map[string]bool{}
	collectionSeen := false
	lastPositional := -1
	for i, p := range params {
		if p.Kind == Argument {
			lastPositional = i
		}
	}

	for i, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return modelErrf(path, "parameter name must not be empty")
		}
		if err := validateType(path, p); err != nil {
			return err
		}
		if p.Required && p.Default != "" {
			return modelErrf(path, "parameter '%s' is required and must not declare a default", p.Name)
		}

		switch p.Kind {
		case Option:
			if optionNames[strings.ToLower(p.Name)] {
				return modelErrf(path, "duplicate option '--%s'", p.Name)
			}
			optionNames[strings.ToLower(p.Name)] = true
			if len(p.Short) > 1 {
				return modelErrf(path, "short name '-%s' of '--%s' must be a single character", p.Short, p.Name)
			}
			if p.Short != "" {
				if shorts[p.Short] {
					return modelErrf(path, "duplicate short name '-%s'", p.Short)
				}
				shorts[p.Short] = true
			}
			if p.Type.IsBool() && p.Required {
				return modelErrf(path, "boolean option '--%s' has flag semantics and cannot be required", p.Name)
			}
		case Argument:
			if p.Short != "" {
				return modelErrf(path, "positional parameter '%s' cannot have a short name", p.Name)
			}
			if p.Type.IsList() {
				if collectionSeen {
					return modelErrf(path, "at most one positional parameter may be a collection")
				}
				collectionSeen = true
				if i != lastPositional {
					return modelErrf(path, "collection positional '%s' must be the last positional parameter", p.Name)
				}
			}
		default:
			return modelErrf(path, "parameter '%s' has unknown kind %d", p.Name, p.Kind)
		}
	}
	return nil
}

func validateType(path string, p *Param) error {
	t := p.Type
	if t.IsList() {
		if t.Elem == nil {
			return modelErrf(path, "collection parameter '%s' has no element type", p.Name)
		}
		if t.Elem.IsList() {
			return modelErrf(path, "parameter '%s': collections of collections are not supported", p.Name)
		}
		t = *t.Elem
	}
	switch t.Kind {
	case KindEnum:
		if t.Enum == nil || len(t.Enum.Members) == 0 {
			return modelErrf(path, "enum parameter '%s' declares no members", p.Name)
		}
	case KindCustom:
		if t.Custom == "" {
			return modelErrf(path, "custom parameter '%s' names no converter", p.Name)
		}
	}
	return nil
}

func validateHooks(path string, hooks []Hook) error {
	for i, h := range hooks {
		set := 0
		if h.Before != nil {
			set++
		}
		if h.After != nil {
			set++
		}
		if h.OnError != nil {
			set++
		}
		if set != 1 {
			return modelErrf(path, "hook %d must set exactly one function", i)
		}
		switch h.Phase {
		case PhaseBefore:
			if h.Before == nil {
				return modelErrf(path, "hook %d: before phase requires Before", i)
			}
		case PhaseAfter:
			if h.After == nil {
				return modelErrf(path, "hook %d: after phase requires After", i)
			}
		case PhaseOnError:
			if h.OnError == nil {
				return modelErrf(path, "hook %d: on-error phase requires OnError", i)
			}
		default:
			return modelErrf(path, "hook %d has unknown phase %d", i, h.Phase)
		}
	}
	return nil
}
