// Package hostsim is a stand-in for the Tilepad plugin backend.
//
// It serves the inspector's WebSocket protocol from an in-memory
// implementation: a scripted connection state, one tile with a
// configurable action id, a property map, and a drifting viewer
// count. It exists so the inspector screens can be developed and
// tested without a running Tilepad installation.
//
// The simulator mimics the backend's observable behavior:
//   - GET_STATE is answered with the current state; state changes are
//     pushed to every connection unsolicited.
//   - OPEN_AUTH_URL walks the state through LOADING to AUTHENTICATED
//     after a short delay, the way a real browser authorization would.
//   - SET_PROPERTY updates the store and pushes the new snapshot to
//     the other connections, exercising the external-change path.
//   - GET_VIEW_COUNT answers with a viewer count that drifts between
//     requests.
package hostsim
