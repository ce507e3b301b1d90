package protocol

// ConnectionState is the backend's authentication state as reported in
// STATE messages. The UI never derives this locally; it is set
// exclusively by inbound messages.
type ConnectionState string

const (
	// StateUnset is the sentinel before any STATE message has arrived.
	// It never appears on the wire.
	StateUnset ConnectionState = ""

	// StateLoading means the backend is still validating stored
	// credentials (or has none to validate yet).
	StateLoading ConnectionState = "LOADING"

	// StateNotAuthenticated means the backend has no usable Twitch
	// credentials and the user must authorize.
	StateNotAuthenticated ConnectionState = "NOT_AUTHENTICATED"

	// StateAuthenticated means the backend holds a validated token.
	StateAuthenticated ConnectionState = "AUTHENTICATED"
)

// Known reports whether s is one of the states this UI understands.
// Unknown states are ignored by handlers rather than treated as errors.
func (s ConnectionState) Known() bool {
	switch s {
	case StateLoading, StateNotAuthenticated, StateAuthenticated:
		return true
	}
	return false
}
