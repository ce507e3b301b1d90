package hostsim

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tilepad/twitch-inspector/internal/logging"
	"github.com/tilepad/twitch-inspector/internal/protocol"
)

// Config holds the simulator configuration
type Config struct {
	// InitialState the simulator reports before any authorization
	InitialState protocol.ConnectionState

	// ActionID of the simulated tile (e.g. "send_message")
	ActionID string

	// AuthDelay is how long OPEN_AUTH_URL takes to "complete"
	AuthDelay time.Duration

	// InitialProperties seeds the tile's property map (may be nil)
	InitialProperties map[string]any
}

// Server simulates the plugin backend for one tile.
type Server struct {
	upgrader websocket.Upgrader

	authDelay time.Duration

	mu        sync.Mutex
	state     protocol.ConnectionState
	tile      protocol.Tile
	props     map[string]any
	viewCount int
	conns     map[*conn]struct{}
}

// conn is one inspector connection with serialized writes.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

// New creates a simulator. Zero-value config fields get sensible
// defaults: NOT_AUTHENTICATED, a one-second auth delay.
func New(config Config) *Server {
	if config.InitialState == protocol.StateUnset {
		config.InitialState = protocol.StateNotAuthenticated
	}
	if config.AuthDelay == 0 {
		config.AuthDelay = time.Second
	}

	props := make(map[string]any)
	for k, v := range config.InitialProperties {
		props[k] = v
	}

	return &Server{
		authDelay: config.AuthDelay,
		state:     config.InitialState,
		tile:      protocol.Tile{ActionID: config.ActionID},
		props:     props,
		viewCount: 1,
		conns:     make(map[*conn]struct{}),
	}
}

// Handler returns the WebSocket endpoint handler. Mount it wherever
// convenient; the inspector only needs the resulting ws:// URL.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		s.serveConn(&conn{ws: ws})
	})
}

// ListenAndServe runs the simulator on the given address until the
// process exits. Used by the simulate command.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", s.Handler())

	logging.Info("Host simulator listening",
		zap.String("addr", addr),
		zap.String("action_id", s.tile.ActionID),
	)
	return fmt.Errorf("simulator stopped: %w", http.ListenAndServe(addr, mux))
}

// Close drops every active connection. Clients observe it as the
// backend going away: their reads fail and their message streams
// close. The handler itself keeps accepting new connections.
func (s *Server) Close() {
	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		_ = c.ws.Close()
	}
}

// SetState overrides the connection state and pushes it to every
// connection. Tests use this to script state sequences.
func (s *Server) SetState(state protocol.ConnectionState) {
	s.mu.Lock()
	s.state = state
	peers := s.peers(nil)
	s.mu.Unlock()

	for _, c := range peers {
		c.send(protocol.State{State: state})
	}
}

// SetViewCount overrides the reported viewer count.
func (s *Server) SetViewCount(count int) {
	s.mu.Lock()
	s.viewCount = count
	s.mu.Unlock()
}

// serveConn answers one inspector until it disconnects.
func (s *Server) serveConn(c *conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		_ = c.ws.Close()
	}()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.Decode(data)
		if err != nil {
			logging.Warn("simulator ignoring malformed message", zap.Error(err))
			continue
		}

		s.handle(c, msg)
	}
}

func (s *Server) handle(c *conn, msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.GetState:
		s.mu.Lock()
		state := s.state
		s.mu.Unlock()
		c.send(protocol.State{State: state})

	case protocol.GetTile:
		c.send(s.tile)

	case protocol.GetProperties:
		c.send(protocol.Properties{Properties: s.snapshot()})

	case protocol.SetProperty:
		s.mu.Lock()
		s.props[m.Name] = m.Value
		peers := s.peers(c)
		s.mu.Unlock()

		// The writer already knows the new value; everyone else gets
		// the external-change push
		snap := s.snapshot()
		for _, peer := range peers {
			peer.send(protocol.Properties{Properties: snap})
		}

	case protocol.OpenAuthURL:
		s.SetState(protocol.StateLoading)
		go func() {
			time.Sleep(s.authDelay)
			s.SetState(protocol.StateAuthenticated)
		}()

	case protocol.Logout:
		s.SetState(protocol.StateNotAuthenticated)

	case protocol.GetViewCount:
		s.mu.Lock()
		s.viewCount++ // drift so the display has something to render
		count := s.viewCount
		s.mu.Unlock()
		c.send(protocol.ViewCount{Count: count})

	default:
		// Unrecognized messages are ignored, like the real backend
	}
}

// snapshot copies the property map for marshalling outside the lock.
func (s *Server) snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.props))
	for k, v := range s.props {
		out[k] = v
	}
	return out
}

// peers returns every connection except the given one. Caller must
// hold s.mu.
func (s *Server) peers(except *conn) []*conn {
	out := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		if c != except {
			out = append(out, c)
		}
	}
	return out
}

func (c *conn) send(msg protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		logging.Error("simulator failed to encode message", zap.Error(err))
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		logging.Debug("simulator write failed", zap.Error(err))
	}
}
