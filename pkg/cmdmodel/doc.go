// SPDX-License-Identifier: EPL-2.0

// Package cmdmodel defines the declarative command model consumed by the
// dispatch engine: a strictly hierarchical tree of commands, each carrying
// actions with typed parameters, lifecycle hooks, and exit-code mappings.
//
// The tree is plain data. Build it with struct literals, generate it from
// another schema, or load it from a model file (see pkg/modelfile); then
// call Validate once at startup and hand it to a dispatch.Dispatcher. The
// tree must not be mutated afterwards — dispatch treats it as read-only and
// may share it across concurrent calls.
package cmdmodel
