// Package transport exposes the emulator over a framed byte stream.
//
// Bus frames (CBOR-encoded calls and events, see pkg/bus) are carried as
// length-prefixed messages: a 4-byte big-endian length followed by the
// frame body. The Server accepts TCP connections, hands decoded calls to
// the registered bus handler, and broadcasts emitted events to every open
// connection.
//
// This is plumbing for reaching the emulator from a test harness process;
// it is not an MCTP physical-layer binding.
package transport
