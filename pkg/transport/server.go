package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/mctp-emulator/mctpemu-go/pkg/bus"
	"github.com/mctp-emulator/mctpemu-go/pkg/log"
)

// ServerConfig holds bus server configuration.
type ServerConfig struct {
	// Addr is the TCP listen address, e.g. ":5660".
	Addr string

	// Logger receives bus events (default none).
	Logger log.Logger
}

// Server accepts framed bus connections. Inbound call frames are handed to
// the registered handler; events emitted through MessageReceived are
// broadcast to every open connection, matching a bus where signals reach
// all listeners.
type Server struct {
	cfg    ServerConfig
	logger log.Logger

	mu       sync.Mutex
	handler  bus.Handler
	listener net.Listener
	conns    map[net.Conn]*FrameWriter
	closed   bool

	wg sync.WaitGroup
}

// NewServer creates a bus server.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		cfg:    cfg,
		logger: log.OrNoop(cfg.Logger),
		conns:  make(map[net.Conn]*FrameWriter),
	}
}

// RegisterHandler sets the handler that receives inbound calls.
func (s *Server) RegisterHandler(h bus.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Start begins accepting connections. It returns once the listener is
// bound; serving continues until Stop is called or ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return errors.New("server already stopped")
	}
	s.listener = ln
	s.mu.Unlock()

	s.logger.Log(log.Info(log.StageBus, fmt.Sprintf("listening on %s", ln.Addr())))

	s.wg.Add(1)
	go s.acceptLoop(ln)

	if ctx != nil && ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			_ = s.Stop()
		}()
	}

	return nil
}

// Addr returns the server's listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ConnectionCount returns the number of active connections.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Stop closes the listener and all connections and waits for the serving
// goroutines to finish. Safe to call more than once.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ln := s.listener
	conns := make([]net.Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	for _, c := range conns {
		_ = c.Close()
	}

	s.wg.Wait()
	return nil
}

// MessageReceived broadcasts an event frame to all open connections.
func (s *Server) MessageReceived(evt bus.Event) {
	data, err := bus.EncodeEvent(evt)
	if err != nil {
		s.logger.Log(log.Error(log.StageBus, "failed to encode event", err))
		return
	}

	s.mu.Lock()
	writers := make([]*FrameWriter, 0, len(s.conns))
	for _, fw := range s.conns {
		writers = append(writers, fw)
	}
	s.mu.Unlock()

	for _, fw := range writers {
		if err := fw.WriteFrame(data); err != nil {
			s.logger.Log(log.Warn(log.StageBus, "failed to write event frame", err))
		}
	}
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			// Listener closed during Stop.
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = NewFrameWriter(conn)
		s.mu.Unlock()

		s.logger.Log(log.Info(log.StageBus, fmt.Sprintf("connection accepted from %s", conn.RemoteAddr())))

		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer s.dropConn(conn)

	reader := NewFrameReader(conn)
	for {
		data, err := reader.ReadFrame()
		if err != nil {
			if err != io.EOF {
				s.logger.Log(log.Warn(log.StageBus, "connection read failed", err))
			}
			return
		}

		call, _, err := bus.DecodeFrame(data)
		if err != nil {
			s.logger.Log(log.Warn(log.StageBus, "discarding undecodable frame", err))
			continue
		}
		if call == nil {
			// Only calls travel inbound.
			s.logger.Log(log.Warn(log.StageBus, "discarding inbound event frame", nil))
			continue
		}

		s.mu.Lock()
		h := s.handler
		s.mu.Unlock()
		if h != nil {
			h.ReceiveMessage(*call)
		}
	}
}

func (s *Server) dropConn(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// Compile-time interface satisfaction check.
var _ bus.EventSink = (*Server)(nil)
