// SPDX-License-Identifier: MPL-2.0

// Package resolve walks the command tree against the front of an argument
// vector to locate the target action. It is a pure function over the tree
// and the token list; binding happens afterwards in internal/binder.
package resolve

import (
	"strings"

	"github.com/argonaut-cli/argonaut/internal/issue"
	"github.com/argonaut-cli/argonaut/internal/suggest"
	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// Resolution is the located target: the command chain from the root to the
// command context, the matched action, and the tokens left for binding.
type Resolution struct {
	// Chain is the node path from the root (inclusive) to the command
	// context, for hook and exit-code-mapping collection.
	Chain []*cmdmodel.Command
	// Path is the canonical names of the consumed command tokens.
	Path []string
	// Action is the matched (or primary) action.
	Action *cmdmodel.Action
	// Rest is the remainder of the token list, for the binder.
	Rest []string
}

// Command returns the command context, the last node of the chain.
func (r *Resolution) Command() *cmdmodel.Command {
	return r.Chain[len(r.Chain)-1]
}

// Resolve descends the tree by case-insensitive name/alias match until a
// token matches no child, then matches the next token against the actions
// of the command context, falling back to its primary action when the
// tokens are exhausted. Option-looking tokens never match names.
func Resolve(root *cmdmodel.Command, tokens []string) (*Resolution, error) {
	res := &Resolution{Chain: []*cmdmodel.Command{root}}
	current := root
	i := 0

	for i < len(tokens) && !isOption(tokens[i]) {
		child := matchChild(current, tokens[i])
		if child == nil {
			break
		}
		current = child
		res.Chain = append(res.Chain, child)
		res.Path = append(res.Path, child.Name)
		i++
	}

	if i < len(tokens) && !isOption(tokens[i]) {
		token := tokens[i]
		if action := matchAction(current, token); action != nil {
			res.Action = action
			res.Rest = tokens[i+1:]
			return res, nil
		}
		if len(res.Path) == 0 {
			return nil, issue.New(issue.UnknownCommand).
				Withf("unknown command '%s'", token).
				WithSuggestions(suggest.FindSimilar(token, matchableNames(current), suggest.CommandDistance, suggest.MaxResults)...).
				Build()
		}
		return nil, issue.New(issue.UnknownAction).
			Withf("unknown action '%s' for command '%s'", token, strings.Join(res.Path, " ")).
			WithSuggestions(suggest.FindSimilar(token, matchableNames(current), suggest.NameDistance, suggest.MaxResults)...).
			Build()
	}

	// No action token: the command's primary action is the target.
	if action := current.PrimaryAction(); action != nil {
		res.Action = action
		res.Rest = tokens[i:]
		return res, nil
	}
	return nil, issue.Newf(issue.NoActionSpecified,
		"no action specified for command '%s'", contextName(res, root))
}

func contextName(res *Resolution, root *cmdmodel.Command) string {
	if len(res.Path) == 0 {
		return root.Name
	}
	return strings.Join(res.Path, " ")
}

func isOption(token string) bool {
	return len(token) > 1 && token[0] == '-'
}

func matchChild(c *cmdmodel.Command, token string) *cmdmodel.Command {
	for _, child := range c.Children {
		if nameMatches(token, child.Name, child.Aliases) {
			return child
		}
	}
	return nil
}

func matchAction(c *cmdmodel.Command, token string) *cmdmodel.Action {
	for _, a := range c.Actions {
		if nameMatches(token, a.Name, a.Aliases) {
			return a
		}
	}
	return nil
}

func nameMatches(token, name string, aliases []string) bool {
	if strings.EqualFold(token, name) {
		return true
	}
	for _, alias := range aliases {
		if strings.EqualFold(token, alias) {
			return true
		}
	}
	return false
}

// matchableNames lists suggestion candidates at a node: visible child and
// action names. Hidden nodes stay matchable but are never suggested.
func matchableNames(c *cmdmodel.Command) []string {
	names := make([]string, 0, len(c.Children)+len(c.Actions))
	for _, child := range c.Children {
		if !child.Hidden {
			names = append(names, child.Name)
		}
	}
	for _, a := range c.Actions {
		if !a.Hidden {
			names = append(names, a.Name)
		}
	}
	return names
}
