// Package tiles provides access to the per-tile property store owned
// by the Tilepad host.
//
// A tile is one user-invocable button in the host application; its
// persisted configuration is a small set of named properties. The
// store itself lives on the backend - this package only speaks to it
// over the plugin channel:
//
//   - GetTile resolves the tile descriptor (which action the tile
//     performs), one-shot at view startup.
//   - GetProperties fetches the current property snapshot.
//   - SetProperty writes one value, fire and forget.
//
// Responses are correlated with requests by arrival order on the
// channel, which the transport guarantees. Uncorrelated messages -
// connection state pushes, viewer counts, external property change
// pushes - are forwarded on Events() for the view layer to consume.
//
// A response that arrives after its requester gave up (the view
// navigated away, the context expired) is dropped silently.
package tiles
