// SPDX-License-Identifier: MPL-2.0

// Package issue defines the structured diagnostics the dispatch engine
// reports to users: a fixed taxonomy of diagnostic kinds, a Diagnostic
// error type carrying ranked suggestions, and a remediation catalog
// whose entries are markdown rendered on demand for the explain mode.
package issue
