// Package wire defines the MCTP message framing the emulator understands.
//
// An MCTP message begins with a one-byte message type code that selects the
// semantic category (control, PLDM, NVMe-MI, vendor-defined, ...). Everything
// after that byte is category-specific and, for this emulator, opaque: the
// rule table matches it byte-for-byte.
//
// # Vendor-defined messages
//
// The vendor-defined PCI category (0x7E) carries a fixed-size header after
// the type code:
//
//	+--------+-----------+----------+------------+
//	| type   | vendor id | reserved | sub-type   |
//	| 1 byte | 2 bytes BE| 1 byte   | 1 byte     |
//	+--------+-----------+----------+------------+
//
// The vendor id is resolved through a static vendor registry, and known
// vendors may impose extra framing rules (Intel requires the reserved byte
// to equal 0x80). The exact header span doubles as the required prefix when
// matching vendor-defined requests against the rule table.
package wire
