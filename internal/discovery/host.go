package discovery

import (
	"fmt"
	"time"
)

// Host represents a discovered Tilepad host on the network
type Host struct {
	// Name is the advertised instance name (e.g., "Tilepad (studio-pc)")
	Name string

	// IP is the IPv4 address (e.g., "192.168.1.20")
	IP string

	// Port is the plugin server port
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=0.5.1", "path=/plugin"
	Metadata map[string]string

	// DiscoveredAt is when the host was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the host
func (h *Host) String() string {
	return fmt.Sprintf("Tilepad host %q at %s:%d", h.Name, h.IP, h.Port)
}

// Endpoint returns the WebSocket endpoint for a plugin's view channel
// on this host.
func (h *Host) Endpoint(pluginID string) string {
	return fmt.Sprintf("ws://%s:%d/plugin/%s/inspector", h.IP, h.Port, pluginID)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (h *Host) GetMetadata(key string) string {
	if h.Metadata == nil {
		return ""
	}
	return h.Metadata[key]
}
