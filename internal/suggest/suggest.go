// SPDX-License-Identifier: MPL-2.0

// Package suggest ranks "did you mean" candidates for unmatched names by
// edit distance, with deterministic tie-breaking.
package suggest

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

const (
	// MaxResults is the number of suggestions offered with a diagnostic.
	MaxResults = 3
	// CommandDistance is the edit-distance cutoff for top-level command names.
	CommandDistance = 3
	// NameDistance is the edit-distance cutoff for action and option names.
	NameDistance = 2
)

type candidate struct {
	name     string
	distance int
}

// FindSimilar returns up to max candidate names whose case-insensitive edit
// distance from input is at most maxDistance, ranked by distance and then
// lexically. Exact matches are excluded; the caller already knows the input
// matched nothing.
func FindSimilar(input string, candidates []string, maxDistance, max int) []string {
	if input == "" || max <= 0 {
		return nil
	}

	lowered := strings.ToLower(input)
	ranked := make([]candidate, 0, len(candidates))
	for _, name := range candidates {
		d := levenshtein.Distance(lowered, strings.ToLower(name), nil)
		if d > 0 && d <= maxDistance {
			ranked = append(ranked, candidate{name: name, distance: d})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}
	names := make([]string, len(ranked))
	for i, c := range ranked {
		names[i] = c.name
	}
	return names
}
