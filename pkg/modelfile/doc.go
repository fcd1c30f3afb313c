// SPDX-License-Identifier: EPL-2.0

// Package modelfile loads declarative command models from CUE or TOML
// documents and compiles them into cmdmodel trees.
//
// A document only names behavior: action handlers, hook functions, custom
// converters, and exit-code error targets are referenced by name and bound
// through a host-supplied Bindings value at compile time. CUE documents are
// validated against an embedded schema before decoding; TOML documents are
// decoded strictly (unknown keys are rejected).
package modelfile
