package bus

// Call is an inbound bus call delivering an MCTP payload to an endpoint.
//
// CBOR encoding:
//
//	{
//	  1: destinationEid,  // uint8
//	  2: payload          // byte string
//	}
type Call struct {
	DestinationEID uint8  `cbor:"1,keyasint"`
	Payload        []byte `cbor:"2,keyasint"`
}

// Event is the MessageReceived event emitted for every reply.
//
// CBOR encoding:
//
//	{
//	  1: category,   // uint8: the reply's message type code
//	  2: sourceEid,  // uint8: echoes the call's destination eid
//	  3: messageTag, // uint8
//	  4: tagOwner,   // bool: false for responders
//	  5: payload     // byte string
//	}
type Event struct {
	Category   uint8  `cbor:"1,keyasint"`
	SourceEID  uint8  `cbor:"2,keyasint"`
	MessageTag uint8  `cbor:"3,keyasint"`
	TagOwner   bool   `cbor:"4,keyasint"`
	Payload    []byte `cbor:"5,keyasint"`
}

// Handler consumes inbound bus calls. Implementations must not block;
// deferred work is scheduled internally.
type Handler interface {
	// ReceiveMessage handles one inbound call. Failures are internal to
	// the handler: the bus call itself always succeeds.
	ReceiveMessage(call Call)
}

// EventSink receives MessageReceived events. Implementations must be safe
// for concurrent use; the scheduler may emit from a timer goroutine.
type EventSink interface {
	MessageReceived(evt Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(call Call)

// ReceiveMessage calls f(call).
func (f HandlerFunc) ReceiveMessage(call Call) { f(call) }

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(evt Event)

// MessageReceived calls f(evt).
func (f EventSinkFunc) MessageReceived(evt Event) { f(evt) }

// Compile-time interface satisfaction checks.
var (
	_ Handler   = HandlerFunc(nil)
	_ EventSink = EventSinkFunc(nil)
)
