// SPDX-License-Identifier: EPL-2.0

// Package dispatch is the engine's top-level entry point. A Dispatcher owns
// an immutable command tree and turns argument vectors into executed actions:
// it extracts global options, resolves the command path, binds and validates
// parameters, runs the hook lifecycle, and maps the outcome to a process
// exit code.
//
// DispatchE is the primary API; Dispatch is the convenience wrapper for a
// main function that wants a bare exit code. The Dispatcher is safe for
// concurrent use once constructed.
package dispatch
