package config

import "time"

// Registry represents the entire user configuration file.
// This stores metadata for known Tilepad hosts and application preferences.
type Registry struct {
	Version     int              `yaml:"version"`
	Hosts       map[string]*Host `yaml:"hosts,omitempty"` // Keyed by host instance name
	Preferences *Preferences     `yaml:"preferences,omitempty"`
}

// Host represents metadata for a single Tilepad host.
// This is keyed by the host's mDNS instance name in the Registry.
type Host struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastIP   string    `yaml:"last_ip,omitempty"`   // Last known IP address
	LastPort int       `yaml:"last_port,omitempty"` // Last known inspector port
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool   `yaml:"auto_discover"`         // Enable automatic mDNS discovery on startup
	DiscoverTimeout int    `yaml:"discover_timeout"`      // mDNS discovery timeout in seconds
	PluginID        string `yaml:"plugin_id,omitempty"`   // Plugin identifier used in inspector endpoints
	PollInterval    int    `yaml:"poll_interval"`         // Display poll interval in milliseconds
	LastAction      string `yaml:"last_action,omitempty"` // Action identifier used on last run
}

// DefaultPluginID is the plugin identifier used when none is configured.
const DefaultPluginID = "com.tilepad.twitch"

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Hosts:   make(map[string]*Host),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 5,
			PluginID:        DefaultPluginID,
			PollInterval:    2000,
		},
	}
}

// GetHost retrieves host metadata by instance name.
// Returns nil if the host doesn't exist in the registry.
func (r *Registry) GetHost(name string) *Host {
	return r.Hosts[name]
}

// EnsureHost ensures a host entry exists in the registry.
// If the host doesn't exist, creates a new entry.
// Returns the host entry (existing or newly created).
func (r *Registry) EnsureHost(name string) *Host {
	if r.Hosts == nil {
		r.Hosts = make(map[string]*Host)
	}

	if host, exists := r.Hosts[name]; exists {
		return host
	}

	host := &Host{}
	r.Hosts[name] = host
	return host
}

// UpdateHostLastSeen updates the last seen timestamp, IP and port for a host.
func (r *Registry) UpdateHostLastSeen(name, ip string, port int) {
	host := r.EnsureHost(name)
	host.LastSeen = time.Now()
	host.LastIP = ip
	host.LastPort = port
}

// SetHostNickname sets a user-friendly nickname for a host.
func (r *Registry) SetHostNickname(name, nickname string) {
	host := r.EnsureHost(name)
	host.Nickname = nickname
}

// PluginID returns the configured plugin identifier, falling back to the
// default when unset.
func (r *Registry) PluginID() string {
	if r.Preferences == nil || r.Preferences.PluginID == "" {
		return DefaultPluginID
	}
	return r.Preferences.PluginID
}

// PollInterval returns the configured display poll interval.
func (r *Registry) PollInterval() time.Duration {
	if r.Preferences == nil || r.Preferences.PollInterval <= 0 {
		return 2000 * time.Millisecond
	}
	return time.Duration(r.Preferences.PollInterval) * time.Millisecond
}
