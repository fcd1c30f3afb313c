// SPDX-License-Identifier: MPL-2.0

// Package binder splits an argument vector into option and positional
// tokens, matches them against an action's parameters, and produces the
// bound value set using the documented source precedence: command line,
// environment variable, interactive prompt, declared default.
package binder

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/argonaut-cli/argonaut/internal/convert"
	"github.com/argonaut-cli/argonaut/internal/issue"
	"github.com/argonaut-cli/argonaut/internal/prompt"
	"github.com/argonaut-cli/argonaut/internal/suggest"
	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// source identifies where a parameter's value came from, in descending
// precedence order.
type source int

const (
	srcNone source = iota
	srcCLI
	srcEnv
	srcPrompt
	srcDefault
	// srcImplicit is the false a boolean option assumes when nothing
	// supplies it. Implicit values never count for mutual exclusion.
	srcImplicit
)

func (s source) String() string {
	switch s {
	case srcCLI:
		return "command line"
	case srcEnv:
		return "environment"
	case srcPrompt:
		return "prompt"
	case srcDefault:
		return "default"
	case srcImplicit:
		return "implicit"
	default:
		return "none"
	}
}

// Binder binds argument tokens against parameter declarations. The zero
// value is not usable; populate Registry and LookupEnv.
type Binder struct {
	Registry *convert.Registry
	// LookupEnv resolves environment variables; a variable that is set but
	// empty still counts as supplied.
	LookupEnv func(string) (string, bool)
	// Prompter may be nil to disable the prompt source entirely.
	Prompter prompt.Prompter
	// Logger may be nil.
	Logger *log.Logger
}

// Bind resolves all parameters of one action (or the global set) from the
// given tokens. Binding is deterministic: the same tokens against the same
// parameters yield the same values.
func (b *Binder) Bind(params []*cmdmodel.Param, tokens []string) (cmdmodel.Values, error) {
	raws, positionals, err := b.scan(params, tokens)
	if err != nil {
		return nil, err
	}
	if err := b.fillPositionals(params, positionals, raws); err != nil {
		return nil, err
	}

	values := cmdmodel.Values{}
	sources := map[string]source{}
	for _, p := range params {
		src, v, bound, err := b.resolve(p, raws[p])
		if err != nil {
			return nil, err
		}
		if !bound {
			continue
		}
		values[p.Name] = v
		sources[p.Name] = src
		b.debug("bound parameter", "param", p.Name, "source", src.String())
	}

	if err := b.applyRules(params, values, sources); err != nil {
		return nil, err
	}
	if err := b.checkExclusion(params, values, sources); err != nil {
		return nil, err
	}
	return values, nil
}

// scan walks the token list, attributing option values to parameters and
// collecting positional tokens. A bare "--" ends option parsing.
func (b *Binder) scan(params []*cmdmodel.Param, tokens []string) (map[*cmdmodel.Param][]string, []string, error) {
	raws := map[*cmdmodel.Param][]string{}
	var positionals []string
	optionsDone := false

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if optionsDone || !isOptionToken(token) {
			positionals = append(positionals, token)
			continue
		}
		if token == "--" {
			optionsDone = true
			continue
		}

		name, inline, hasInline := splitOptionToken(token)
		p := matchOption(params, token, name)
		if p == nil {
			return nil, nil, unknownOption(params, token, name)
		}

		var raw string
		switch {
		case hasInline:
			raw = inline
		case p.Type.IsBool():
			raw = "true"
		default:
			if i+1 >= len(tokens) {
				return nil, nil, issue.Newf(issue.MissingRequiredParameter,
					"option '%s' requires a value", p.DisplayName())
			}
			i++
			raw = tokens[i]
		}

		if p.Type.IsList() {
			raws[p] = append(raws[p], splitList(raw)...)
		} else {
			// Last occurrence wins for scalar options.
			raws[p] = []string{raw}
		}
	}
	return raws, positionals, nil
}

// fillPositionals assigns leftover tokens to positional parameters in
// declaration order. A collection positional consumes everything remaining,
// which is why the model requires it to be last.
func (b *Binder) fillPositionals(params []*cmdmodel.Param, tokens []string, raws map[*cmdmodel.Param][]string) error {
	i := 0
	for _, p := range params {
		if p.Kind != cmdmodel.Argument {
			continue
		}
		if p.Type.IsList() {
			if i < len(tokens) {
				raws[p] = append(raws[p], tokens[i:]...)
				i = len(tokens)
			}
			continue
		}
		if i < len(tokens) {
			raws[p] = []string{tokens[i]}
			i++
		}
	}
	if i < len(tokens) {
		return issue.Newf(issue.UnexpectedArgument,
			"unexpected argument '%s'", tokens[i])
	}
	return nil
}

// resolve applies the source precedence for one parameter and converts the
// winning raw value(s).
func (b *Binder) resolve(p *cmdmodel.Param, cliRaws []string) (source, any, bool, error) {
	src := srcNone
	var raws []string

	switch {
	case len(cliRaws) > 0:
		src, raws = srcCLI, cliRaws
	case p.EnvVar != "":
		if v, ok := b.LookupEnv(p.EnvVar); ok {
			src = srcEnv
			raws = envRaws(p, v)
		}
	}
	if src == srcNone && p.Prompt != "" && b.Prompter != nil && b.Prompter.Interactive() {
		v, err := b.Prompter.Ask(p.Prompt, p.Secure)
		if err != nil {
			return srcNone, nil, false, issue.New(issue.MissingRequiredParameter).
				Withf("could not prompt for %s", p.DisplayName()).
				Wrap(err).
				Build()
		}
		src, raws = srcPrompt, envRaws(p, v)
	}
	if src == srcNone && p.Default != "" {
		src, raws = srcDefault, envRaws(p, p.Default)
	}

	if src == srcNone {
		if p.Kind == cmdmodel.Option && p.Type.IsBool() {
			// Flag semantics: an absent boolean option is false.
			return srcImplicit, false, true, nil
		}
		if p.Required {
			return srcNone, nil, false, issue.Newf(issue.MissingRequiredParameter,
				"missing required %s '%s'", kindNoun(p), p.DisplayName())
		}
		return srcNone, nil, false, nil
	}

	v, err := b.convertRaws(p, raws)
	if err != nil {
		return srcNone, nil, false, err
	}
	return src, v, true, nil
}

func (b *Binder) convertRaws(p *cmdmodel.Param, raws []string) (any, error) {
	if p.Type.IsList() {
		v, err := b.Registry.ConvertList(p.Type, raws)
		if err != nil {
			return nil, conversionDiag(p, err)
		}
		return v, nil
	}
	v, err := b.Registry.Convert(p.Type, raws[len(raws)-1])
	if err != nil {
		return nil, conversionDiag(p, err)
	}
	return v, nil
}

func (b *Binder) applyRules(params []*cmdmodel.Param, values cmdmodel.Values, sources map[string]source) error {
	for _, p := range params {
		src, ok := sources[p.Name]
		if !ok || src == srcImplicit {
			// Nothing was supplied; there is no value to validate.
			continue
		}
		for _, rule := range p.Rules {
			if err := rule.Apply(values[p.Name]); err != nil {
				return issue.New(issue.ValidationFailure).
					Withf("invalid value for %s: %s rule: %v", p.DisplayName(), rule.Name(), err).
					Build()
			}
		}
	}
	return nil
}

// checkExclusion fails when more than one member of an exclusive group
// carries a value distinct from its unset default. Defaults, the implicit
// false of boolean flags, and supplied values equal to the member's own
// declared default do not count.
func (b *Binder) checkExclusion(params []*cmdmodel.Param, values cmdmodel.Values, sources map[string]source) error {
	groups := map[string][]string{}
	for _, p := range params {
		if p.ExclusiveGroup == "" {
			continue
		}
		src, ok := sources[p.Name]
		if !ok || src == srcImplicit || src == srcDefault {
			continue
		}
		if p.Type.IsBool() {
			if v, _ := values[p.Name].(bool); !v {
				continue
			}
		}
		if p.Default != "" && b.matchesDefault(p, values[p.Name]) {
			continue
		}
		groups[p.ExclusiveGroup] = append(groups[p.ExclusiveGroup], p.DisplayName())
	}
	for _, members := range groups {
		if len(members) > 1 {
			return issue.Newf(issue.MutualExclusionConflict,
				"options %s are mutually exclusive", strings.Join(members, " and "))
		}
	}
	return nil
}

// matchesDefault reports whether a supplied value equals the parameter's
// declared default once both sides are converted.
func (b *Binder) matchesDefault(p *cmdmodel.Param, v any) bool {
	def, err := b.convertRaws(p, envRaws(p, p.Default))
	if err != nil {
		return false
	}
	return reflect.DeepEqual(v, def)
}

func conversionDiag(p *cmdmodel.Param, err error) error {
	return issue.New(issue.ConversionFailure).
		Withf("invalid value for %s", p.DisplayName()).
		Wrap(err).
		Build()
}

func unknownOption(params []*cmdmodel.Param, token, name string) error {
	var candidates []string
	for _, p := range params {
		if p.Kind == cmdmodel.Option {
			candidates = append(candidates, p.Name)
		}
	}
	return issue.New(issue.UnknownOption).
		Withf("unknown option '%s'", token).
		WithSuggestions(suggest.FindSimilar(name, candidates, suggest.NameDistance, suggest.MaxResults)...).
		Build()
}

// envRaws prepares a single raw value from the environment, a prompt, or a
// default: collection parameters split on commas, scalars pass through.
func envRaws(p *cmdmodel.Param, v string) []string {
	if p.Type.IsList() {
		return splitList(v)
	}
	return []string{v}
}

// splitList expands a comma-separated occurrence into individual elements.
func splitList(raw string) []string {
	if !strings.Contains(raw, ",") {
		return []string{raw}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}

func kindNoun(p *cmdmodel.Param) string {
	if p.Kind == cmdmodel.Option {
		return "option"
	}
	return "argument"
}

func isOptionToken(token string) bool {
	return len(token) > 1 && token[0] == '-'
}

// splitOptionToken separates an option token into its name part and any
// inline "=value". The name keeps no dashes: "--name=v" yields ("name",
// "v", true), "-c" yields ("c", "", false).
func splitOptionToken(token string) (name, inline string, hasInline bool) {
	body := strings.TrimPrefix(token, "-")
	body = strings.TrimPrefix(body, "-")
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		return body[:eq], body[eq+1:], true
	}
	return body, "", false
}

// matchOption finds the parameter a token addresses: long options by name,
// short options by their single-character alias.
func matchOption(params []*cmdmodel.Param, token, name string) *cmdmodel.Param {
	long := strings.HasPrefix(token, "--")
	for _, p := range params {
		if p.Kind != cmdmodel.Option {
			continue
		}
		if long && p.Name == name {
			return p
		}
		if !long && p.Short != "" && p.Short == name {
			return p
		}
	}
	return nil
}

func (b *Binder) debug(msg string, kv ...any) {
	if b.Logger != nil {
		b.Logger.Debug(msg, kv...)
	}
}
