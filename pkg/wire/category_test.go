package wire

import "testing"

func TestCategoryForCode(t *testing.T) {
	cases := []struct {
		code uint8
		want MessageCategory
		name string
	}{
		{0x00, CategoryMctpControl, "MctpControl"},
		{0x01, CategoryPLDM, "PLDM"},
		{0x02, CategoryNCSI, "NCSI"},
		{0x03, CategoryEthernet, "Ethernet"},
		{0x04, CategoryNVMeMgmtMsg, "NVMeMgmtMsg"},
		{0x05, CategorySPDM, "SPDM"},
		{0x7E, CategoryVDPCI, "VDPCI"},
		{0x7F, CategoryVDIANA, "VDIANA"},
		{0x42, CategoryUnknown, "Unknown"},
		{0xFF, CategoryUnknown, "Unknown"},
	}

	for _, tc := range cases {
		got := CategoryForCode(tc.code)
		if got != tc.want {
			t.Errorf("CategoryForCode(0x%02X) = %v, want %v", tc.code, got, tc.want)
		}
		if got.String() != tc.name {
			t.Errorf("CategoryForCode(0x%02X).String() = %q, want %q", tc.code, got.String(), tc.name)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		if got := ResolveCategory(nil); got != CategoryUnknown {
			t.Errorf("expected Unknown for empty payload, got %v", got)
		}
	})

	t.Run("LeadingByteSelects", func(t *testing.T) {
		if got := ResolveCategory([]byte{0x01, 0xAA, 0xBB}); got != CategoryPLDM {
			t.Errorf("expected PLDM, got %v", got)
		}
	})
}

func TestIsVendorDefined(t *testing.T) {
	if !CategoryVDPCI.IsVendorDefined() {
		t.Error("VDPCI should be vendor-defined")
	}
	if CategoryPLDM.IsVendorDefined() {
		t.Error("PLDM should not be vendor-defined")
	}
}
