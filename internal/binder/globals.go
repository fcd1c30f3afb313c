// SPDX-License-Identifier: MPL-2.0

package binder

import (
	"github.com/argonaut-cli/argonaut/pkg/cmdmodel"
)

// SplitGlobals extracts tokens addressing the root command's shared
// parameter set from anywhere in the argument vector, so that global
// options may appear before, between, or after command-path tokens. The
// returned rest preserves the relative order of everything else. Global
// option names are reserved across the tree; actions must not redeclare
// them. A bare "--" ends extraction.
func SplitGlobals(globals []*cmdmodel.Param, argv []string) (globalTokens, rest []string) {
	if len(globals) == 0 {
		return nil, argv
	}
	for i := 0; i < len(argv); i++ {
		token := argv[i]
		if token == "--" {
			rest = append(rest, argv[i:]...)
			break
		}
		if !isOptionToken(token) {
			rest = append(rest, token)
			continue
		}
		name, _, hasInline := splitOptionToken(token)
		p := matchOption(globals, token, name)
		if p == nil {
			rest = append(rest, token)
			continue
		}
		globalTokens = append(globalTokens, token)
		if !hasInline && !p.Type.IsBool() && i+1 < len(argv) {
			i++
			globalTokens = append(globalTokens, argv[i])
		}
	}
	return globalTokens, rest
}
