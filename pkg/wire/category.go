package wire

// MCTP message type codes, per DSP0239.
const (
	CodeMctpControl uint8 = 0x00
	CodePLDM        uint8 = 0x01
	CodeNCSI        uint8 = 0x02
	CodeEthernet    uint8 = 0x03
	CodeNVMeMgmtMsg uint8 = 0x04
	CodeSPDM        uint8 = 0x05
	CodeVDPCI       uint8 = 0x7E
	CodeVDIANA      uint8 = 0x7F
)

// MessageCategory is the semantic category selected by a message's leading
// type byte.
type MessageCategory uint8

const (
	// CategoryUnknown is the sentinel for unrecognized type codes.
	// Unknown is not an error: the message simply matches no rules.
	CategoryUnknown MessageCategory = iota

	// CategoryMctpControl is the MCTP control protocol (0x00).
	CategoryMctpControl

	// CategoryPLDM is the Platform Level Data Model (0x01).
	CategoryPLDM

	// CategoryNCSI is NC-SI over MCTP (0x02).
	CategoryNCSI

	// CategoryEthernet is Ethernet over MCTP (0x03).
	CategoryEthernet

	// CategoryNVMeMgmtMsg is the NVMe management interface (0x04).
	CategoryNVMeMgmtMsg

	// CategorySPDM is the Security Protocol and Data Model (0x05).
	CategorySPDM

	// CategoryVDPCI is vendor-defined PCI (0x7E). Messages in this
	// category carry a VDPCIHeader and are keyed by vendor and sub-type.
	CategoryVDPCI

	// CategoryVDIANA is vendor-defined IANA (0x7F).
	CategoryVDIANA
)

// String returns the category name. The names match the top-level keys of
// the rule-table document.
func (c MessageCategory) String() string {
	switch c {
	case CategoryMctpControl:
		return "MctpControl"
	case CategoryPLDM:
		return "PLDM"
	case CategoryNCSI:
		return "NCSI"
	case CategoryEthernet:
		return "Ethernet"
	case CategoryNVMeMgmtMsg:
		return "NVMeMgmtMsg"
	case CategorySPDM:
		return "SPDM"
	case CategoryVDPCI:
		return "VDPCI"
	case CategoryVDIANA:
		return "VDIANA"
	default:
		return "Unknown"
	}
}

// IsVendorDefined returns true for categories whose rule-table entries are
// keyed by vendor identity rather than a single global code.
func (c MessageCategory) IsVendorDefined() bool {
	return c == CategoryVDPCI
}

// CategoryForCode maps a message type code to its category.
// Unrecognized codes map to CategoryUnknown.
func CategoryForCode(code uint8) MessageCategory {
	switch code {
	case CodeMctpControl:
		return CategoryMctpControl
	case CodePLDM:
		return CategoryPLDM
	case CodeNCSI:
		return CategoryNCSI
	case CodeEthernet:
		return CategoryEthernet
	case CodeNVMeMgmtMsg:
		return CategoryNVMeMgmtMsg
	case CodeSPDM:
		return CategorySPDM
	case CodeVDPCI:
		return CategoryVDPCI
	case CodeVDIANA:
		return CategoryVDIANA
	default:
		return CategoryUnknown
	}
}

// ResolveCategory resolves the category of a raw message from its leading
// type byte. Returns CategoryUnknown for an empty payload.
func ResolveCategory(payload []byte) MessageCategory {
	if len(payload) == 0 {
		return CategoryUnknown
	}
	return CategoryForCode(payload[0])
}
