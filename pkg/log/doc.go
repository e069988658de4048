// Package log provides structured event logging for the MCTP emulator.
//
// Every interesting moment in a dispatch — payload arrival, category
// resolution, rule-table load, match outcome, scheduling, emission — is
// captured as an Event. Applications choose where events go by supplying a
// Logger implementation:
//
//   - SlogAdapter writes events to a log/slog logger for console output.
//   - FileLogger appends CBOR-encoded events to a capture file, which can
//     be replayed when diagnosing a protocol client under test.
//   - MultiLogger fans events out to several loggers at once.
//   - NoopLogger discards everything.
//
// CBOR encoding uses integer keys for compactness; see Event field tags.
package log
