// Package channel implements the bidirectional message transport
// between the inspector UI and the Tilepad plugin backend.
//
// The transport is a WebSocket connection carrying the JSON messages
// defined in internal/protocol. A Client owns the connection: Send
// writes outbound messages, and inbound messages are decoded by a
// single read loop and delivered on Messages() strictly in arrival
// order. There is no batching or reordering; handlers see messages in
// the order the backend sent them.
//
// The client is close tolerant: messages that arrive after Close, or
// after the consumer has stopped reading, are dropped silently.
package channel
