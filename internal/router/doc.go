// Package router implements the screen routing state machine and the
// property synchronization bindings for the inspector view.
//
// # Screen Routing
//
// The visible screen is a pure function of two inputs: the backend
// connection state (pushed over the plugin channel) and the tile's
// action id (resolved once at startup). Route computes the screen;
// a Router owns the current (state, action) pair, recomputes after
// every update, and applies the result through a ScreenSet, which must
// make exactly one screen visible. Applying the current screen again
// is a visual no-op.
//
// The action id starts at ActionNone until the async tile query
// resolves. An AUTHENTICATED state arriving before that routes to the
// no-options screen rather than waiting - the sentinel is distinct
// from every real action id, so the lookup simply misses.
//
// # Property Sync
//
// A Binding ties one form field to one named tile property. Outbound,
// a finalized edit writes through the store (numeric bindings coerce
// the text first). Inbound, a property snapshot populates the field
// and enables it; fields start disabled so a default value can never
// overwrite state the view has not seen yet. Snapshots received while
// a different action is active are ignored, since all bindings share
// one message stream.
//
// A Selection is the variant for properties backed by a fixed numeric
// option list; a snapshot selects the first option whose value matches
// the stored property and leaves the selection alone when the
// property is absent.
package router
