package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mctp-emulator/mctpemu-go/pkg/emulator"
)

func TestConfigDefaults(t *testing.T) {
	a := NewAdvertiser(Config{})
	assert.Equal(t, DefaultInstance, a.config.Instance)
	assert.Equal(t, DefaultTTL, a.config.TTL)
}

func TestTXTRecords(t *testing.T) {
	records := TXTRecords(emulator.DefaultIdentity())
	assert.Contains(t, records, "eid=8")
	assert.Contains(t, records, "binding=2")
	assert.Contains(t, records, "medium=3")
	assert.Contains(t, records, "mode=BusOwner")
	assert.Contains(t, records, "uuid=MCTPDBG_EMULATOR")
}

func TestStopWithoutAdvertise(t *testing.T) {
	a := NewAdvertiser(Config{})
	// Must not panic.
	a.Stop()
}

func TestGetInterfacesUnknownName(t *testing.T) {
	a := NewAdvertiser(Config{Interface: "does-not-exist-0"})
	assert.Nil(t, a.getInterfaces())
}
