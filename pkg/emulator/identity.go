package emulator

// Default endpoint identity values.
const (
	// DefaultEID is the emulated endpoint id.
	DefaultEID uint8 = 8

	// DefaultBindingID identifies the emulated binding type (PCIe VDM).
	DefaultBindingID uint8 = 2

	// DefaultBindingMediumID identifies the emulated physical medium.
	DefaultBindingMediumID uint8 = 3

	// DefaultUUID is the emulated endpoint UUID.
	DefaultUUID = "MCTPDBG_EMULATOR"

	// DefaultBindingMode marks the endpoint as the bus owner.
	DefaultBindingMode = "BusOwner"
)

// Identity holds the endpoint properties the emulator exposes on the bus.
// These describe the emulated binding, not any real transport.
type Identity struct {
	// EID is the endpoint id, echoed as SourceEID on every reply.
	EID uint8

	// BindingID is the emulated binding type.
	BindingID uint8

	// BindingMediumID is the emulated physical medium.
	BindingMediumID uint8

	// StaticEIDSupport reports whether the endpoint supports static EIDs.
	StaticEIDSupport bool

	// UUID identifies the endpoint.
	UUID string

	// BindingMode is the endpoint's bus role.
	BindingMode string
}

// DefaultIdentity returns the reference endpoint identity.
func DefaultIdentity() Identity {
	return Identity{
		EID:             DefaultEID,
		BindingID:       DefaultBindingID,
		BindingMediumID: DefaultBindingMediumID,
		UUID:            DefaultUUID,
		BindingMode:     DefaultBindingMode,
	}
}
