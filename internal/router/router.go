package router

import (
	"context"

	"github.com/tilepad/twitch-inspector/internal/protocol"
	"github.com/tilepad/twitch-inspector/internal/tiles"
)

// ScreenSet is the apply side of routing: an implementation makes
// exactly the given screen visible and hides all others. Show must be
// idempotent - showing the already-visible screen changes nothing.
type ScreenSet interface {
	Show(screen ScreenID)
}

// Sender is the outbound half of the plugin channel.
// Satisfied by *channel.Client.
type Sender interface {
	Send(msg protocol.Message) error
}

// Router owns the (connection state, action id) pair and keeps the
// visible screen in sync with it. It is not safe for concurrent use;
// the view layer drives it from its single event loop.
type Router struct {
	screens ScreenSet

	state   protocol.ConnectionState
	action  ActionID
	current ScreenID
}

// New creates a router and applies the initial screen (connecting,
// since no state has arrived yet).
func New(screens ScreenSet) *Router {
	r := &Router{
		screens: screens,
		state:   protocol.StateUnset,
		action:  ActionNone,
	}
	r.apply()
	return r
}

// HandleState processes an inbound STATE message. Unrecognized states
// are ignored.
func (r *Router) HandleState(state protocol.ConnectionState) {
	if !state.Known() {
		return
	}
	r.state = state
	r.apply()
}

// SetAction records the tile's resolved action id. The screen is
// recomputed immediately: if an AUTHENTICATED state arrived before the
// tile query resolved, this moves the view off the no-options screen
// onto the action's own screen.
func (r *Router) SetAction(action ActionID) {
	r.action = action
	r.apply()
}

// State returns the last known connection state.
func (r *Router) State() protocol.ConnectionState { return r.state }

// Action returns the resolved action id (ActionNone until resolved).
func (r *Router) Action() ActionID { return r.action }

// Current returns the screen the router last applied.
func (r *Router) Current() ScreenID { return r.current }

func (r *Router) apply() {
	r.current = Route(r.state, r.action)
	r.screens.Show(r.current)
}

// Bootstrap runs the fixed startup sequence against the backend:
//
//  1. resolve the active tile (action id)
//  2. request the connection state
//  3. fetch the tile's property values
//
// The order is deliberate and must not change: the property snapshot
// is only meaningful once the action id is known, and asking for state
// first would widen the window in which AUTHENTICATED routes to the
// no-options screen.
func Bootstrap(ctx context.Context, store tiles.Store, ch Sender) (tiles.Tile, tiles.Properties, error) {
	tile, err := store.GetTile(ctx)
	if err != nil {
		return tiles.Tile{}, nil, err
	}

	if err := ch.Send(protocol.GetState{}); err != nil {
		return tiles.Tile{}, nil, err
	}

	props, err := store.GetProperties(ctx)
	if err != nil {
		return tiles.Tile{}, nil, err
	}

	return tile, props, nil
}
