package log

import "time"

// Event represents an emulator log event captured at any stage.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// DispatchID correlates all events of one dispatch (UUID).
	DispatchID string `cbor:"2,keyasint,omitempty"`

	// Stage identifies where in the pipeline the event was captured.
	Stage Stage `cbor:"3,keyasint"`

	// Severity classifies the event.
	Severity Severity `cbor:"4,keyasint"`

	// Category is the MCTP message type code, when known.
	Category uint8 `cbor:"5,keyasint,omitempty"`

	// SourceEID is the endpoint id the reply is attributed to.
	SourceEID uint8 `cbor:"6,keyasint,omitempty"`

	// PayloadSize is the inbound or outbound payload length in bytes.
	PayloadSize int `cbor:"7,keyasint,omitempty"`

	// DelayMillis is the matched rule's processing delay, for match and
	// schedule events.
	DelayMillis int32 `cbor:"8,keyasint,omitempty"`

	// Detail is a short human-readable description.
	Detail string `cbor:"9,keyasint,omitempty"`

	// Err is the error text for error and warning events.
	Err string `cbor:"10,keyasint,omitempty"`
}

// Stage identifies the pipeline stage that produced an event.
type Stage uint8

const (
	// StageDispatch covers payload arrival and dispatch bookkeeping.
	StageDispatch Stage = 0
	// StageResolve covers message category and vendor-header resolution.
	StageResolve Stage = 1
	// StageRuleTable covers rule-table loading and lookup.
	StageRuleTable Stage = 2
	// StageMatch covers rule scanning.
	StageMatch Stage = 3
	// StageSchedule covers deferred-response queueing and ticking.
	StageSchedule Stage = 4
	// StageEmit covers MessageReceived emission.
	StageEmit Stage = 5
	// StageBus covers bus transport activity.
	StageBus Stage = 6
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageDispatch:
		return "DISPATCH"
	case StageResolve:
		return "RESOLVE"
	case StageRuleTable:
		return "RULE_TABLE"
	case StageMatch:
		return "MATCH"
	case StageSchedule:
		return "SCHEDULE"
	case StageEmit:
		return "EMIT"
	case StageBus:
		return "BUS"
	default:
		return "UNKNOWN"
	}
}

// Severity classifies an event.
type Severity uint8

const (
	// SeverityInfo is normal operation.
	SeverityInfo Severity = 0
	// SeverityWarn is a recoverable anomaly (message aborted, rule skipped).
	SeverityWarn Severity = 1
	// SeverityError is an operational failure.
	SeverityError Severity = 2
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Info creates an informational event for the given stage.
func Info(stage Stage, detail string) Event {
	return Event{
		Timestamp: time.Now(),
		Stage:     stage,
		Severity:  SeverityInfo,
		Detail:    detail,
	}
}

// Warn creates a warning event for the given stage.
func Warn(stage Stage, detail string, err error) Event {
	e := Event{
		Timestamp: time.Now(),
		Stage:     stage,
		Severity:  SeverityWarn,
		Detail:    detail,
	}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}

// Error creates an error event for the given stage.
func Error(stage Stage, detail string, err error) Event {
	e := Event{
		Timestamp: time.Now(),
		Stage:     stage,
		Severity:  SeverityError,
		Detail:    detail,
	}
	if err != nil {
		e.Err = err.Error()
	}
	return e
}
