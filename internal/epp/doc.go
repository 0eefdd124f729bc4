// Package epp binds base commands to their optional extension and owns the
// request/response document contract.
//
// Ownership boundary:
// - command/extension compatibility and response typing
// - <epp><command> encode and <epp><response> decode
// - submit entry point over an opaque Transport
//
// A request carries at most one extension. Its response extension type is
// fixed by the extension type alone.
package epp
