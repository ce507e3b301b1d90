package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type Tilepad hosts advertise
	ServiceType = "_tilepad._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for host discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is the default Tilepad plugin server port
	DefaultPort = 59372
)

// Scanner handles mDNS host discovery
type Scanner struct {
	// Timeout is the maximum time to wait for host discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// ScanForHosts discovers all Tilepad hosts on the local network
// Returns a list of discovered hosts or an error
func (s *Scanner) ScanForHosts() ([]*Host, error) {
	return s.ScanForHostsWithContext(context.Background())
}

// ScanForHostsWithContext discovers hosts with a custom context
func (s *Scanner) ScanForHostsWithContext(ctx context.Context) ([]*Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	hosts := make([]*Host, 0)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	// Collect entries in a goroutine while Browse runs
	go func() {
		for entry := range entries {
			host := s.parseServiceEntry(entry)
			if host != nil {
				hosts = append(hosts, host)
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()

	return hosts, nil
}

// FirstHost waits for the first Tilepad host to appear
// Returns the host or an error if none is found within the timeout
func (s *Scanner) FirstHost(ctx context.Context) (*Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	hostChan := make(chan *Host, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			host := s.parseServiceEntry(entry)
			if host != nil {
				hostChan <- host
				cancel() // Found a host, stop browsing
				return
			}
		}
	}()

	err = resolver.Browse(ctx, ServiceType, ServiceDomain, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case host := <-hostChan:
		return host, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("no Tilepad host found within timeout")
	}
}

// parseServiceEntry converts a zeroconf service entry to a Host
// Returns nil if the entry is unusable (no address)
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Host {
	// Get IP address (prefer IPv4)
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}

	// Fallback to IPv6 if no IPv4
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}

	if ip == "" {
		return nil
	}

	// Get port (default if not specified)
	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	// Parse TXT records into metadata
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		// TXT records are in "key=value" format
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Host{
		Name:         entry.Instance,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForHosts is a convenience function to scan with a custom timeout
func ScanForHosts(timeout time.Duration) ([]*Host, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.ScanForHosts()
}
