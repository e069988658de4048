package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// VDPCIHeaderSize is the fixed size of the vendor-defined PCI header,
// including the leading message type byte.
const VDPCIHeaderSize = 5

// IntelVendorID is the PCI vendor id for Intel.
const IntelVendorID uint16 = 0x8086

// intelReservedSentinel is the value Intel requires in the reserved byte.
const intelReservedSentinel uint8 = 0x80

// Vendor-defined framing errors.
var (
	// ErrMalformedHeader indicates the payload is too short to hold the
	// vendor-defined header.
	ErrMalformedHeader = errors.New("vendor-defined header truncated")

	// ErrUnknownVendor indicates the header's vendor id is not in the
	// vendor registry.
	ErrUnknownVendor = errors.New("unknown vendor id")

	// ErrInvalidReserved indicates a vendor-specific reserved-byte rule
	// was violated.
	ErrInvalidReserved = errors.New("unexpected value in reserved byte")
)

// vendorRegistry maps known PCI vendor ids to vendor names. The names match
// the second-level keys under "VDPCI" in the rule-table document.
var vendorRegistry = map[uint16]string{
	IntelVendorID: "Intel",
}

// VendorName resolves a PCI vendor id to its registry name.
func VendorName(vendorID uint16) (string, bool) {
	name, ok := vendorRegistry[vendorID]
	return name, ok
}

// VDPCIHeader is the parsed vendor-defined PCI message header.
type VDPCIHeader struct {
	// TypeCode is the leading message type byte (always CodeVDPCI).
	TypeCode uint8

	// VendorID is the big-endian PCI vendor id.
	VendorID uint16

	// Vendor is the registry name for VendorID.
	Vendor string

	// Reserved is the reserved byte between vendor id and sub-type.
	Reserved uint8

	// SubType is the vendor-specific sub-type code, the secondary
	// rule-table key.
	SubType uint8

	// Raw is the exact header byte span from the original payload. It is
	// the required prefix when matching vendor-defined requests.
	Raw []byte
}

// ParseVDPCIHeader parses and validates the vendor-defined header at the
// start of payload. The header must be fully present, name a registered
// vendor, and satisfy that vendor's framing rules.
func ParseVDPCIHeader(payload []byte) (*VDPCIHeader, error) {
	if len(payload) < VDPCIHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrMalformedHeader, len(payload), VDPCIHeaderSize)
	}

	hdr := &VDPCIHeader{
		TypeCode: payload[0],
		VendorID: binary.BigEndian.Uint16(payload[1:3]),
		Reserved: payload[3],
		SubType:  payload[4],
		Raw:      payload[:VDPCIHeaderSize],
	}

	name, ok := VendorName(hdr.VendorID)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04X", ErrUnknownVendor, hdr.VendorID)
	}
	hdr.Vendor = name

	if hdr.VendorID == IntelVendorID && hdr.Reserved != intelReservedSentinel {
		return nil, fmt.Errorf("%w: 0x%02X, want 0x%02X", ErrInvalidReserved, hdr.Reserved, intelReservedSentinel)
	}

	return hdr, nil
}
