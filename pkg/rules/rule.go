package rules

import (
	"errors"
	"fmt"
)

// Processing-delay policy values.
const (
	// DelayImmediate replies synchronously.
	DelayImmediate int32 = 0

	// DelayNoReply suppresses the reply entirely.
	DelayNoReply int32 = -1
)

// ErrRuleField indicates a single rule entry is malformed (missing or
// mistyped request/response). The entry is skipped; the scan continues.
var ErrRuleField = errors.New("malformed rule entry")

// Rule is one request/response mapping.
type Rule struct {
	// Request is the expected request body, excluding the header prefix
	// (the leading type byte, or the vendor-defined header span).
	Request []byte

	// Response is the reply payload emitted on a match.
	Response []byte

	// DelayMillis selects the reply policy: DelayImmediate, DelayNoReply,
	// or a positive deferral in milliseconds. Any other value is an
	// invalid configuration.
	DelayMillis int32
}

// ValidDelay reports whether DelayMillis is one of the recognized policy
// values.
func (r Rule) ValidDelay() bool {
	return r.DelayMillis >= DelayNoReply
}

// Entry is one parsed rule-table entry. Entries whose request or response
// could not be decoded carry Err and are skipped by the matcher.
type Entry struct {
	Rule Rule
	Err  error
}

// TableError indicates the rule-table document is missing, unparseable, or
// structurally wrong for the requested lookup. Callers treat it as "no
// matching rule" and abort processing of the current message.
type TableError struct {
	// File is the document path, when known.
	File string

	// Message describes what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message.
func (e *TableError) Error() string {
	msg := e.Message
	if e.File != "" {
		msg = fmt.Sprintf("%s: %s", e.File, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *TableError) Unwrap() error {
	return e.Cause
}
