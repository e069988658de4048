package bus

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Frame type discriminators for bus frames.
const (
	// FrameCall carries an inbound Call.
	FrameCall uint8 = 1

	// FrameEvent carries an outbound Event.
	FrameEvent uint8 = 2
)

// frame is the envelope for a bus frame.
type frame struct {
	Type  uint8  `cbor:"1,keyasint"`
	Call  *Call  `cbor:"2,keyasint,omitempty"`
	Event *Event `cbor:"3,keyasint,omitempty"`
}

// encMode is the CBOR encoder mode for bus frames.
// Configured for deterministic encoding with integer keys.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for bus frames.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// EncodeCall encodes an inbound call as a bus frame.
func EncodeCall(call Call) ([]byte, error) {
	return encMode.Marshal(&frame{Type: FrameCall, Call: &call})
}

// EncodeEvent encodes a MessageReceived event as a bus frame.
func EncodeEvent(evt Event) ([]byte, error) {
	return encMode.Marshal(&frame{Type: FrameEvent, Event: &evt})
}

// DecodeFrame decodes a bus frame into either a Call or an Event.
// Exactly one of the returned pointers is non-nil on success.
func DecodeFrame(data []byte) (*Call, *Event, error) {
	var f frame
	if err := decMode.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to decode bus frame: %w", err)
	}

	switch f.Type {
	case FrameCall:
		if f.Call == nil {
			return nil, nil, fmt.Errorf("call frame without call body")
		}
		return f.Call, nil, nil
	case FrameEvent:
		if f.Event == nil {
			return nil, nil, fmt.Errorf("event frame without event body")
		}
		return nil, f.Event, nil
	default:
		return nil, nil, fmt.Errorf("unknown bus frame type %d", f.Type)
	}
}
