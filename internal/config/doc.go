// Package config provides user configuration management for the inspector.
//
// This package manages a YAML-based configuration file that stores metadata
// for previously seen Tilepad hosts along with application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/tilepad-inspector/config.yaml or $HOME/.config/tilepad-inspector/config.yaml
//   - macOS: $HOME/.config/tilepad-inspector/config.yaml
//   - Windows: %LOCALAPPDATA%\tilepad-inspector\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a host we connected to
//	registry.UpdateHostLastSeen("living-room", "192.168.1.20", 59372)
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
