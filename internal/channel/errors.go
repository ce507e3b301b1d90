package channel

import (
	"errors"
	"fmt"

	"github.com/tilepad/twitch-inspector/internal/protocol"
)

// ErrClosed is returned by Send after the client has been closed.
var ErrClosed = errors.New("channel is closed")

// ErrorType categorizes channel failures.
type ErrorType int

const (
	// ErrTypeDial indicates the WebSocket connection could not be
	// established
	ErrTypeDial ErrorType = iota
	// ErrTypeEncode indicates an outbound message failed to marshal
	ErrTypeEncode
	// ErrTypeTransport indicates a read/write failure on an
	// established connection
	ErrTypeTransport
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeDial:
		return "Dial Error"
	case ErrTypeEncode:
		return "Encode Error"
	case ErrTypeTransport:
		return "Transport Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ChannelError carries a categorized channel failure.
type ChannelError struct {
	Type     ErrorType
	Message  string
	Endpoint string
	Err      error
}

// Error implements the error interface
func (e *ChannelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ChannelError) Unwrap() error {
	return e.Err
}

// NewDialError creates a connection-establishment error
func NewDialError(endpoint string, err error) *ChannelError {
	return &ChannelError{
		Type:     ErrTypeDial,
		Message:  fmt.Sprintf("failed to connect to plugin backend at %s", endpoint),
		Endpoint: endpoint,
		Err:      err,
	}
}

// NewEncodeError creates an outbound marshalling error
func NewEncodeError(msgType protocol.Type, err error) *ChannelError {
	return &ChannelError{
		Type:    ErrTypeEncode,
		Message: fmt.Sprintf("failed to encode %s message", msgType),
		Err:     err,
	}
}

// NewTransportError creates a read/write error
func NewTransportError(message string, err error) *ChannelError {
	return &ChannelError{
		Type:    ErrTypeTransport,
		Message: message,
		Err:     err,
	}
}

// IsDialError checks if an error is a connection-establishment error
func IsDialError(err error) bool {
	var chErr *ChannelError
	if errors.As(err, &chErr) {
		return chErr.Type == ErrTypeDial
	}
	return false
}
