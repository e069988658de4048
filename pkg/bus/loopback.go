package bus

import "sync"

// DefaultLoopbackBuffer is the default event channel capacity.
const DefaultLoopbackBuffer = 16

// Loopback is an in-process bus. Calls are delivered synchronously to the
// registered handler; emitted events are buffered on a channel for the
// test harness or embedding application to drain.
type Loopback struct {
	mu      sync.RWMutex
	handler Handler
	events  chan Event
}

// NewLoopback creates a loopback bus with the given event buffer size.
// A size of 0 uses DefaultLoopbackBuffer.
func NewLoopback(bufferSize int) *Loopback {
	if bufferSize <= 0 {
		bufferSize = DefaultLoopbackBuffer
	}
	return &Loopback{
		events: make(chan Event, bufferSize),
	}
}

// RegisterHandler sets the handler that receives inbound calls.
func (l *Loopback) RegisterHandler(h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = h
}

// Send delivers a call to the registered handler. Calls sent before a
// handler is registered are dropped, mirroring a bus with no listener.
func (l *Loopback) Send(call Call) {
	l.mu.RLock()
	h := l.handler
	l.mu.RUnlock()

	if h != nil {
		h.ReceiveMessage(call)
	}
}

// MessageReceived buffers an emitted event. If the buffer is full the event
// is dropped; the loopback bus offers no backpressure.
func (l *Loopback) MessageReceived(evt Event) {
	select {
	case l.events <- evt:
	default:
	}
}

// Events returns the channel of emitted events.
func (l *Loopback) Events() <-chan Event {
	return l.events
}

// Compile-time interface satisfaction check.
var _ EventSink = (*Loopback)(nil)
