// Package discovery advertises the emulator's bus endpoint over mDNS so
// test harnesses can find a running emulator without configuration.
package discovery

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"

	"github.com/mctp-emulator/mctpemu-go/pkg/emulator"
)

// Service discovery constants.
const (
	// ServiceType is the DNS-SD service type for the emulator bus.
	ServiceType = "_mctpemu._tcp"

	// Domain is the DNS-SD domain.
	Domain = "local."

	// DefaultInstance is the default service instance name.
	DefaultInstance = "mctpemu"

	// DefaultTTL is the DNS record TTL.
	DefaultTTL = 120 * time.Second
)

// Config configures advertiser behavior.
type Config struct {
	// Instance is the service instance name (default DefaultInstance).
	Instance string

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL (default DefaultTTL).
	TTL time.Duration
}

// Advertiser registers the emulator bus endpoint as an mDNS service.
type Advertiser struct {
	config Config

	mu     sync.Mutex
	server *zeroconf.Server
}

// NewAdvertiser creates a new mDNS advertiser.
func NewAdvertiser(config Config) *Advertiser {
	if config.Instance == "" {
		config.Instance = DefaultInstance
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	return &Advertiser{config: config}
}

// TXTRecords builds the TXT records describing an emulated endpoint.
func TXTRecords(ident emulator.Identity) []string {
	return []string{
		fmt.Sprintf("eid=%d", ident.EID),
		fmt.Sprintf("binding=%d", ident.BindingID),
		fmt.Sprintf("medium=%d", ident.BindingMediumID),
		fmt.Sprintf("mode=%s", ident.BindingMode),
		fmt.Sprintf("uuid=%s", ident.UUID),
	}
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *Advertiser) getInterfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}

	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts advertising the bus endpoint on the given port.
// A previous advertisement is replaced.
func (a *Advertiser) Advertise(port int, ident emulator.Identity) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		a.config.Instance,
		ServiceType,
		Domain,
		port,
		TXTRecords(ident),
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register mDNS service: %w", err)
	}

	a.server = server
	return nil
}

// Stop withdraws the advertisement. Safe to call when not advertising.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
