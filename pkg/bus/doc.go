// Package bus defines the management-bus contract the emulator speaks.
//
// The bus is a request/response substrate with two halves:
//
//   - Inbound: a ReceiveMessage call carrying a destination endpoint id and
//     a raw MCTP payload. The call is fire-and-forget from the caller's
//     perspective; the emulator always acknowledges it.
//   - Outbound: a MessageReceived event carrying the response category,
//     source endpoint id, message tag, tag ownership, and payload.
//
// The package defines the Handler and EventSink interfaces that decouple the
// emulator core from any concrete transport, a deterministic CBOR codec for
// carrying calls and events over framed byte streams, and an in-process
// Loopback bus for tests and embedding.
package bus
