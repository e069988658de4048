// Package emulator implements the MCTP endpoint responder.
//
// The Responder is the single entry point for inbound messages. For each
// payload it resolves the message category, loads the rule table, scans for
// an exact request match, and applies the matched rule's reply policy:
// emit the response immediately, defer it through the scheduler, or
// suppress it.
//
// Dispatch is fire-and-forget. Every failure along the way — truncated
// vendor header, unknown vendor, missing rule file, no matching rule — is
// local to the current message: it is logged, produces no reply, and is
// never surfaced to the bus caller.
package emulator
