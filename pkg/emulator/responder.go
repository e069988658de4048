package emulator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mctp-emulator/mctpemu-go/pkg/bus"
	"github.com/mctp-emulator/mctpemu-go/pkg/log"
	"github.com/mctp-emulator/mctpemu-go/pkg/rules"
	"github.com/mctp-emulator/mctpemu-go/pkg/scheduler"
	"github.com/mctp-emulator/mctpemu-go/pkg/wire"
)

// Responder tag fields. A responder never owns the message tag.
const (
	responderMessageTag uint8 = 0
	responderTagOwner         = false
)

// Config holds responder configuration.
type Config struct {
	// Identity is the endpoint identity (default DefaultIdentity).
	Identity Identity

	// Source supplies the rule table per dispatch. Required.
	Source rules.Source

	// Sink receives MessageReceived events. Required.
	Sink bus.EventSink

	// TickInterval is the scheduler tick period (default 10ms).
	TickInterval time.Duration

	// Timers is the scheduler timer factory (default wall clock).
	Timers scheduler.TimerFactory

	// Logger receives dispatch events (default none).
	Logger log.Logger
}

// Responder is the emulated MCTP endpoint. One responder owns exactly one
// deferred-response queue and one tick timer.
type Responder struct {
	identity Identity
	source   rules.Source
	sink     bus.EventSink
	sched    *scheduler.Scheduler
	logger   log.Logger
}

// New creates a responder.
func New(cfg Config) *Responder {
	ident := cfg.Identity
	if ident == (Identity{}) {
		ident = DefaultIdentity()
	}

	logger := log.OrNoop(cfg.Logger)
	return &Responder{
		identity: ident,
		source:   cfg.Source,
		sink:     cfg.Sink,
		sched: scheduler.New(cfg.Sink, scheduler.Config{
			TickInterval: cfg.TickInterval,
			Timers:       cfg.Timers,
			Logger:       logger,
		}),
		logger: logger,
	}
}

// Identity returns the endpoint identity.
func (r *Responder) Identity() Identity {
	return r.identity
}

// Scheduler returns the deferred-response scheduler, for observation.
func (r *Responder) Scheduler() *scheduler.Scheduler {
	return r.sched
}

// Close stops the scheduler, dropping any queued responses.
func (r *Responder) Close() {
	r.sched.Stop()
}

// ReceiveMessage handles an inbound bus call. The call's destination eid
// becomes the reply's source eid.
func (r *Responder) ReceiveMessage(call bus.Call) {
	r.Dispatch(call.DestinationEID, call.Payload)
}

// Dispatch processes one inbound message. It never fails from the caller's
// perspective: problems are logged and the message produces no reply.
func (r *Responder) Dispatch(srcEID uint8, payload []byte) {
	dispatchID := uuid.NewString()

	if len(payload) == 0 {
		r.warn(dispatchID, "empty payload", nil)
		return
	}

	category := wire.ResolveCategory(payload)
	r.info(dispatchID, fmt.Sprintf("message type %s", category), payload[0], srcEID, len(payload))

	table, err := r.source.Load()
	if err != nil {
		r.logEvent(log.Error(log.StageRuleTable, "rule table unavailable", err), dispatchID)
		return
	}

	headerPrefix, entries, ok := r.selectRules(dispatchID, table, category, payload)
	if !ok {
		return
	}

	rule, matched := rules.Match(entries, headerPrefix, payload, r.logger)
	if !matched {
		r.info(dispatchID, "no matching request found", payload[0], srcEID, len(payload))
		return
	}

	evt := bus.Event{
		Category:   payload[0],
		SourceEID:  srcEID,
		MessageTag: responderMessageTag,
		TagOwner:   responderTagOwner,
		Payload:    rule.Response,
	}

	switch {
	case rule.DelayMillis == rules.DelayImmediate:
		r.sink.MessageReceived(evt)
		e := log.Info(log.StageEmit, "response emitted")
		e.Category = evt.Category
		e.SourceEID = evt.SourceEID
		e.PayloadSize = len(evt.Payload)
		r.logEvent(e, dispatchID)

	case rule.DelayMillis == rules.DelayNoReply:
		r.info(dispatchID, "no response, infinite delay", payload[0], srcEID, len(payload))

	case rule.DelayMillis > 0:
		r.sched.Enqueue(scheduler.Pending{
			Remaining: time.Duration(rule.DelayMillis) * time.Millisecond,
			Event:     evt,
		})

	default:
		e := log.Error(log.StageDispatch, "invalid processing delay", nil)
		e.DelayMillis = rule.DelayMillis
		r.logEvent(e, dispatchID)
	}
}

// selectRules resolves the candidate rule list and required header prefix
// for the message. For vendor-defined messages the prefix is the exact
// header span; otherwise it is the leading type byte.
func (r *Responder) selectRules(dispatchID string, table *rules.Table, category wire.MessageCategory, payload []byte) ([]byte, []rules.Entry, bool) {
	if category.IsVendorDefined() {
		hdr, err := wire.ParseVDPCIHeader(payload)
		if err != nil {
			r.logEvent(log.Warn(log.StageResolve, "invalid vendor-defined message", err), dispatchID)
			return nil, nil, false
		}

		entries, err := table.VendorRules(hdr.Vendor, strconv.Itoa(int(hdr.SubType)))
		if err != nil {
			r.logEvent(log.Warn(log.StageRuleTable, "vendor rule lookup failed", err), dispatchID)
			return nil, nil, false
		}
		return hdr.Raw, entries, true
	}

	entries, err := table.CategoryRules(category.String())
	if err != nil {
		r.logEvent(log.Warn(log.StageRuleTable, "category rule lookup failed", err), dispatchID)
		return nil, nil, false
	}
	return payload[:1], entries, true
}

func (r *Responder) info(dispatchID, detail string, category, srcEID uint8, size int) {
	e := log.Info(log.StageDispatch, detail)
	e.Category = category
	e.SourceEID = srcEID
	e.PayloadSize = size
	r.logEvent(e, dispatchID)
}

func (r *Responder) warn(dispatchID, detail string, err error) {
	r.logEvent(log.Warn(log.StageDispatch, detail, err), dispatchID)
}

func (r *Responder) logEvent(e log.Event, dispatchID string) {
	e.DispatchID = dispatchID
	r.logger.Log(e)
}

// Compile-time interface satisfaction check.
var _ bus.Handler = (*Responder)(nil)
