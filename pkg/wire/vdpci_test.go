package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseVDPCIHeader(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		payload := []byte{0x7E, 0x80, 0x86, 0x80, 0x05, 0x01, 0x02}
		hdr, err := ParseVDPCIHeader(payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hdr.VendorID != 0x8086 {
			t.Errorf("vendor id = 0x%04X, want 0x8086", hdr.VendorID)
		}
		if hdr.Vendor != "Intel" {
			t.Errorf("vendor = %q, want Intel", hdr.Vendor)
		}
		if hdr.SubType != 5 {
			t.Errorf("sub-type = %d, want 5", hdr.SubType)
		}
		if !bytes.Equal(hdr.Raw, payload[:VDPCIHeaderSize]) {
			t.Errorf("raw header = %v, want %v", hdr.Raw, payload[:VDPCIHeaderSize])
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := ParseVDPCIHeader([]byte{0x7E, 0x80, 0x86})
		if !errors.Is(err, ErrMalformedHeader) {
			t.Errorf("expected ErrMalformedHeader, got %v", err)
		}
	})

	t.Run("UnknownVendor", func(t *testing.T) {
		_, err := ParseVDPCIHeader([]byte{0x7E, 0x12, 0x34, 0x80, 0x05})
		if !errors.Is(err, ErrUnknownVendor) {
			t.Errorf("expected ErrUnknownVendor, got %v", err)
		}
	})

	t.Run("IntelReservedViolation", func(t *testing.T) {
		_, err := ParseVDPCIHeader([]byte{0x7E, 0x80, 0x86, 0x00, 0x05})
		if !errors.Is(err, ErrInvalidReserved) {
			t.Errorf("expected ErrInvalidReserved, got %v", err)
		}
	})
}

func TestVendorName(t *testing.T) {
	if name, ok := VendorName(0x8086); !ok || name != "Intel" {
		t.Errorf("VendorName(0x8086) = %q, %v", name, ok)
	}
	if _, ok := VendorName(0x1234); ok {
		t.Error("VendorName(0x1234) should not resolve")
	}
}
