package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mctp-emulator/mctpemu-go/pkg/log"
)

// recorder captures log events emitted during a scan.
type recorder struct {
	events []log.Event
}

func (r *recorder) Log(event log.Event) {
	r.events = append(r.events, event)
}

func TestMatchExact(t *testing.T) {
	entries := []Entry{
		{Rule: Rule{Request: []byte{0x01}, Response: []byte{0x02}}},
		{Rule: Rule{Request: []byte{0x01, 0x02}, Response: []byte{0x03}}},
	}

	rule, ok := Match(entries, []byte{0x00}, []byte{0x00, 0x01}, nil)
	require.True(t, ok)
	assert.Equal(t, []byte{0x02}, rule.Response)

	rule, ok = Match(entries, []byte{0x00}, []byte{0x00, 0x01, 0x02}, nil)
	require.True(t, ok)
	assert.Equal(t, []byte{0x03}, rule.Response)
}

func TestMatchNoWildcards(t *testing.T) {
	entries := []Entry{
		{Rule: Rule{Request: []byte{0x01}, Response: []byte{0x02}}},
	}

	// Prefix match alone is not enough: lengths must agree.
	_, ok := Match(entries, []byte{0x00}, []byte{0x00, 0x01, 0xFF}, nil)
	assert.False(t, ok)

	// Wrong header prefix never matches.
	_, ok = Match(entries, []byte{0x00}, []byte{0x05, 0x01}, nil)
	assert.False(t, ok)

	_, ok = Match(entries, []byte{0x00}, []byte{0x00, 0x02}, nil)
	assert.False(t, ok)
}

func TestMatchFirstWins(t *testing.T) {
	entries := []Entry{
		{Rule: Rule{Request: []byte{0x01}, Response: []byte{0xAA}}},
		{Rule: Rule{Request: []byte{0x01}, Response: []byte{0xBB}}},
	}

	rule, ok := Match(entries, []byte{0x00}, []byte{0x00, 0x01}, nil)
	require.True(t, ok)
	assert.Equal(t, []byte{0xAA}, rule.Response, "earlier rule in table order must win")
}

func TestMatchVendorHeaderPrefix(t *testing.T) {
	header := []byte{0x7E, 0x80, 0x86, 0x80, 0x05}
	entries := []Entry{
		{Rule: Rule{Request: []byte{0x10}, Response: []byte{0x20, 0x21}}},
	}

	payload := append(append([]byte{}, header...), 0x10)
	rule, ok := Match(entries, header, payload, nil)
	require.True(t, ok)
	assert.Equal(t, []byte{0x20, 0x21}, rule.Response)
}

func TestMatchSkipsMalformedEntries(t *testing.T) {
	rec := &recorder{}
	entries := []Entry{
		{Err: errors.New("missing request")},
		{Rule: Rule{Request: []byte{0x01}, Response: []byte{0x02}}},
	}

	rule, ok := Match(entries, []byte{0x00}, []byte{0x00, 0x01}, rec)
	require.True(t, ok)
	assert.Equal(t, []byte{0x02}, rule.Response)

	require.Len(t, rec.events, 1)
	assert.Equal(t, log.SeverityWarn, rec.events[0].Severity)
	assert.Equal(t, log.StageMatch, rec.events[0].Stage)
}

func TestMatchExhaustedList(t *testing.T) {
	_, ok := Match(nil, []byte{0x00}, []byte{0x00, 0x01}, nil)
	assert.False(t, ok)
}
