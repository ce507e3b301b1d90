// Package logging provides structured logging for the inspector.
//
// This package wraps zap logger with convenience functions for the
// logging patterns used throughout the inspector. Because the
// inspector renders a full-screen TUI on stdout, logging is silent by
// default and writes to stderr when enabled, so log lines never tear
// the interface.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (message payloads, read loop exits)
//   - Info: Normal operations (connections, channel messages)
//   - Warn: Non-fatal issues (malformed messages, dropped frames)
//   - Error: Fatal issues (startup failures)
//
// # Configuration
//
// Set the TILEPAD_LOG_LEVEL environment variable to enable output:
//
//	TILEPAD_LOG_LEVEL=debug tilepad-inspector 2>inspector.log
//
// # Specialized Logging
//
// Channel traffic has dedicated helpers:
//
//	logging.LogChannelEvent(endpoint, "connected")
//	logging.LogChannelMessage("received", "STATE", len(data))
package logging
