package transport

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mctp-emulator/mctpemu-go/pkg/bus"
)

// captureHandler records inbound calls.
type captureHandler struct {
	mu    sync.Mutex
	calls []bus.Call
}

func (h *captureHandler) ReceiveMessage(call bus.Call) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, call)
}

func (h *captureHandler) all() []bus.Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]bus.Call(nil), h.calls...)
}

func startServer(t *testing.T) (*Server, *captureHandler) {
	t.Helper()

	srv := NewServer(ServerConfig{Addr: "127.0.0.1:0"})
	h := &captureHandler{}
	srv.RegisterHandler(h)

	require.NoError(t, srv.Start(context.Background()))
	t.Cleanup(func() { _ = srv.Stop() })
	return srv, h
}

func dial(t *testing.T, srv *Server) net.Conn {
	t.Helper()

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal(msg)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestServerDeliversCalls(t *testing.T) {
	srv, h := startServer(t)
	conn := dial(t, srv)

	data, err := bus.EncodeCall(bus.Call{DestinationEID: 8, Payload: []byte{0x00, 0x01}})
	require.NoError(t, err)
	require.NoError(t, NewFrameWriter(conn).WriteFrame(data))

	waitFor(t, func() bool { return len(h.all()) == 1 }, "call never delivered")

	calls := h.all()
	assert.Equal(t, uint8(8), calls[0].DestinationEID)
	assert.Equal(t, []byte{0x00, 0x01}, calls[0].Payload)
}

func TestServerBroadcastsEvents(t *testing.T) {
	srv, _ := startServer(t)
	conn := dial(t, srv)

	waitFor(t, func() bool { return srv.ConnectionCount() == 1 }, "connection never registered")

	srv.MessageReceived(bus.Event{Category: 0x00, SourceEID: 8, Payload: []byte{0x02}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	frame, err := NewFrameReader(conn).ReadFrame()
	require.NoError(t, err)

	call, evt, err := bus.DecodeFrame(frame)
	require.NoError(t, err)
	assert.Nil(t, call)
	require.NotNil(t, evt)
	assert.Equal(t, uint8(8), evt.SourceEID)
	assert.Equal(t, []byte{0x02}, evt.Payload)
}

func TestServerSkipsUndecodableFrames(t *testing.T) {
	srv, h := startServer(t)
	conn := dial(t, srv)

	fw := NewFrameWriter(conn)
	require.NoError(t, fw.WriteFrame([]byte{0xDE, 0xAD}))

	data, err := bus.EncodeCall(bus.Call{DestinationEID: 1, Payload: []byte{0x05}})
	require.NoError(t, err)
	require.NoError(t, fw.WriteFrame(data))

	waitFor(t, func() bool { return len(h.all()) == 1 }, "valid call after garbage never delivered")
}

func TestServerStopClosesConnections(t *testing.T) {
	srv, _ := startServer(t)
	conn := dial(t, srv)

	waitFor(t, func() bool { return srv.ConnectionCount() == 1 }, "connection never registered")

	require.NoError(t, srv.Stop())
	assert.Equal(t, 0, srv.ConnectionCount())

	// The peer observes the close.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, err := NewFrameReader(conn).ReadFrame()
	assert.Error(t, err)

	// Stop is idempotent.
	assert.NoError(t, srv.Stop())
}
