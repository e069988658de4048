// Package scheduler implements deferred response emission for the emulator.
//
// Responses with a positive processing delay are queued as Pending entries
// and counted down by a single shared tick timer instead of one timer per
// entry. The scheduler is a two-state machine:
//
//   - Idle: queue empty, no timer armed.
//   - Active: queue non-empty, timer armed for one tick interval.
//
// Enqueueing from Idle arms the timer; enqueueing while Active never resets
// the in-flight timer. Each tick decrements every entry by the interval,
// emits and evicts the expired ones in insertion order, and either re-arms
// or returns to Idle. Expiry is therefore accurate only to within one tick
// interval.
//
// Timers are created through the TimerFactory seam so tests can drive ticks
// without wall-clock waits.
package scheduler
