package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/mctp-emulator/mctpemu-go/pkg/bus"
	"github.com/mctp-emulator/mctpemu-go/pkg/log"
)

// DefaultTickInterval is the shared timer period.
const DefaultTickInterval = 10 * time.Millisecond

// State represents the scheduler state.
type State uint8

const (
	// StateIdle indicates an empty queue and no armed timer.
	StateIdle State = iota

	// StateActive indicates a non-empty queue with the timer armed.
	StateActive
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateActive:
		return "ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// Pending is one deferred response awaiting emission.
type Pending struct {
	// Remaining is the delay left before emission. Decremented by one
	// tick interval per tick; the entry is emitted once it reaches zero
	// or below.
	Remaining time.Duration

	// Event is the MessageReceived event to emit.
	Event bus.Event
}

// Config holds scheduler configuration. Zero fields take defaults.
type Config struct {
	// TickInterval is the shared timer period (default 10ms).
	TickInterval time.Duration

	// Timers creates the tick timers (default WallTimers).
	Timers TimerFactory

	// Logger receives scheduler events (default none).
	Logger log.Logger
}

// Scheduler owns the deferred-response queue and the shared tick timer.
// The invariant after every enqueue and every tick: the timer is armed iff
// the queue is non-empty.
type Scheduler struct {
	mu sync.Mutex

	// tickMu serializes whole ticks so emissions from consecutive ticks
	// cannot interleave. Held only by tick, never by Enqueue.
	tickMu sync.Mutex

	state    State
	queue    []Pending
	interval time.Duration

	timers TimerFactory
	timer  Timer

	sink   bus.EventSink
	logger log.Logger
}

// New creates a scheduler that emits expired responses through sink.
func New(sink bus.EventSink, cfg Config) *Scheduler {
	s := &Scheduler{
		state:    StateIdle,
		interval: cfg.TickInterval,
		timers:   cfg.Timers,
		sink:     sink,
		logger:   log.OrNoop(cfg.Logger),
	}
	if s.interval <= 0 {
		s.interval = DefaultTickInterval
	}
	if s.timers == nil {
		s.timers = WallTimers
	}
	return s
}

// State returns the current scheduler state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Len returns the number of queued responses.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// TickInterval returns the configured tick period.
func (s *Scheduler) TickInterval() time.Duration {
	return s.interval
}

// Enqueue appends a deferred response to the queue tail. If the scheduler
// is Idle the timer is armed; an in-flight timer is never reset.
func (s *Scheduler) Enqueue(p Pending) {
	s.mu.Lock()
	s.queue = append(s.queue, p)
	armed := false
	if s.state == StateIdle {
		s.state = StateActive
		s.timer = s.timers.AfterFunc(s.interval, s.tick)
		armed = true
	}
	depth := len(s.queue)
	s.mu.Unlock()

	evt := log.Info(log.StageSchedule, fmt.Sprintf("response queued (depth %d)", depth))
	evt.Category = p.Event.Category
	evt.SourceEID = p.Event.SourceEID
	evt.DelayMillis = int32(p.Remaining / time.Millisecond)
	s.logger.Log(evt)
	if armed {
		s.logger.Log(log.Info(log.StageSchedule, "tick timer armed"))
	}
}

// Stop cancels the timer and drops any queued responses. Intended only for
// shutdown; queued entries are not emitted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.queue = nil
	s.state = StateIdle
}

// tick runs once per timer expiry. It decrements every queued entry by the
// tick interval, emits and evicts the expired ones in insertion order, and
// re-arms the timer unless the queue drained.
func (s *Scheduler) tick() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	s.mu.Lock()

	// A Stop that raced the timer firing is a normal stop: nothing to do.
	if s.state != StateActive {
		s.mu.Unlock()
		return
	}

	var expired []Pending
	survivors := s.queue[:0]
	for _, p := range s.queue {
		p.Remaining -= s.interval
		if p.Remaining <= 0 {
			expired = append(expired, p)
			continue
		}
		survivors = append(survivors, p)
	}
	s.queue = survivors

	if len(s.queue) == 0 {
		s.timer = nil
		s.state = StateIdle
	} else {
		s.timer = s.timers.AfterFunc(s.interval, s.tick)
	}
	idle := s.state == StateIdle
	s.mu.Unlock()

	for _, p := range expired {
		s.sink.MessageReceived(p.Event)

		evt := log.Info(log.StageEmit, "deferred response emitted")
		evt.Category = p.Event.Category
		evt.SourceEID = p.Event.SourceEID
		evt.PayloadSize = len(p.Event.Payload)
		s.logger.Log(evt)
	}

	if idle {
		s.logger.Log(log.Info(log.StageSchedule, "queue empty, timer stopped"))
	}
}
