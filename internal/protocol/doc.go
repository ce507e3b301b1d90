// Package protocol defines the message protocol spoken between the
// inspector UI and the Tilepad plugin backend.
//
// All messages are JSON objects carrying a "type" discriminator in
// SCREAMING_SNAKE_CASE, matching the plugin's wire format. The package
// models the messages as a closed set of Go structs implementing the
// Message interface, with Encode/Decode translating to and from the
// wire form.
//
// # Message Flow
//
// Requests (UI → backend):
//   - GET_STATE: ask for the current connection state
//   - OPEN_AUTH_URL: open the Twitch authorization page
//   - LOGOUT: drop stored credentials
//   - GET_VIEW_COUNT: ask for the current viewer count
//   - GET_TILE: ask for the active tile descriptor
//   - GET_PROPERTIES: ask for the tile's property values
//   - SET_PROPERTY: persist one property value
//
// Responses and pushes (backend → UI):
//   - STATE: connection state changed (or answer to GET_STATE)
//   - VIEW_COUNT: answer to GET_VIEW_COUNT
//   - TILE: answer to GET_TILE
//   - PROPERTIES: property snapshot (answer or external change push)
//
// Messages with an unrecognized type decode into Unknown rather than
// failing; handlers treat Unknown as a no-op.
package protocol
