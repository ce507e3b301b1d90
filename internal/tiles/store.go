package tiles

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/tilepad/twitch-inspector/internal/logging"
	"github.com/tilepad/twitch-inspector/internal/protocol"
)

// ErrStoreClosed is returned by pending fetches when the underlying
// channel closes before the response arrives.
var ErrStoreClosed = errors.New("tile store channel closed")

// Tile describes the tile a view session is attached to.
type Tile struct {
	// ActionID identifies the action variant the tile performs
	// ("send_message", "marker", ...). Empty when the tile has none.
	ActionID string
}

// Store is the capability surface the view layer uses to read and
// write tile configuration.
type Store interface {
	// GetTile resolves the active tile descriptor.
	GetTile(ctx context.Context) (Tile, error)

	// GetProperties fetches the current property snapshot.
	GetProperties(ctx context.Context) (Properties, error)

	// SetProperty persists one property value. Fire and forget:
	// failures are logged, not returned.
	SetProperty(name string, value any)
}

// Channel is the subset of the plugin channel the store needs.
// Satisfied by *channel.Client.
type Channel interface {
	Send(msg protocol.Message) error
	Messages() <-chan protocol.Message
}

// RemoteStore implements Store over the plugin channel. It owns the
// channel's inbound stream: store responses (TILE, PROPERTIES answers)
// are matched to pending requests by arrival order, and every other
// message is forwarded on Events() for the view layer.
type RemoteStore struct {
	ch Channel

	events chan protocol.Message

	mu          sync.Mutex
	tileWaiters []chan protocol.Tile
	propWaiters []chan protocol.Properties
}

// NewRemoteStore wraps the channel and starts the dispatch loop.
func NewRemoteStore(ch Channel) *RemoteStore {
	s := &RemoteStore{
		ch:     ch,
		events: make(chan protocol.Message, 16),
	}
	go s.dispatch()
	return s
}

// Events returns the stream of messages that are not store responses:
// STATE pushes, VIEW_COUNT answers, external PROPERTIES pushes, and
// unknown messages. Closed when the channel closes.
func (s *RemoteStore) Events() <-chan protocol.Message {
	return s.events
}

// GetTile sends GET_TILE and waits for the matching TILE response.
func (s *RemoteStore) GetTile(ctx context.Context) (Tile, error) {
	waiter := make(chan protocol.Tile, 1)

	s.mu.Lock()
	s.tileWaiters = append(s.tileWaiters, waiter)
	s.mu.Unlock()

	if err := s.ch.Send(protocol.GetTile{}); err != nil {
		s.dropTileWaiter(waiter)
		return Tile{}, err
	}

	select {
	case msg, ok := <-waiter:
		if !ok {
			return Tile{}, ErrStoreClosed
		}
		return Tile{ActionID: msg.ActionID}, nil
	case <-ctx.Done():
		s.dropTileWaiter(waiter)
		return Tile{}, ctx.Err()
	}
}

// GetProperties sends GET_PROPERTIES and waits for the matching
// PROPERTIES response.
func (s *RemoteStore) GetProperties(ctx context.Context) (Properties, error) {
	waiter := make(chan protocol.Properties, 1)

	s.mu.Lock()
	s.propWaiters = append(s.propWaiters, waiter)
	s.mu.Unlock()

	if err := s.ch.Send(protocol.GetProperties{}); err != nil {
		s.dropPropWaiter(waiter)
		return nil, err
	}

	select {
	case msg, ok := <-waiter:
		if !ok {
			return nil, ErrStoreClosed
		}
		return Properties(msg.Properties), nil
	case <-ctx.Done():
		s.dropPropWaiter(waiter)
		return nil, ctx.Err()
	}
}

// SetProperty persists one property value. Fire and forget.
func (s *RemoteStore) SetProperty(name string, value any) {
	if err := s.ch.Send(protocol.SetProperty{Name: name, Value: value}); err != nil {
		logging.Warn("failed to write tile property",
			zap.String("name", name),
			zap.Error(err),
		)
	}
}

// dispatch consumes the channel's inbound stream, answering pending
// requests in arrival order and forwarding the rest.
func (s *RemoteStore) dispatch() {
	defer func() {
		close(s.events)

		// Release anyone still waiting on a response
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, w := range s.tileWaiters {
			close(w)
		}
		for _, w := range s.propWaiters {
			close(w)
		}
		s.tileWaiters = nil
		s.propWaiters = nil
	}()

	for msg := range s.ch.Messages() {
		switch m := msg.(type) {
		case protocol.Tile:
			if waiter := s.takeTileWaiter(); waiter != nil {
				waiter <- m
				continue
			}
			// Requester gave up before the answer arrived; drop it

		case protocol.Properties:
			if waiter := s.takePropWaiter(); waiter != nil {
				waiter <- m
				continue
			}
			// No pending fetch: this is an external change push
			s.forward(msg)

		default:
			s.forward(msg)
		}
	}
}

func (s *RemoteStore) forward(msg protocol.Message) {
	select {
	case s.events <- msg:
	default:
		// Consumer stalled; dropping preserves liveness and the
		// relative order of everything still in the buffer
		logging.Warn("dropping channel event, consumer not keeping up",
			zap.String("type", string(msg.MessageType())),
		)
	}
}

func (s *RemoteStore) takeTileWaiter() chan protocol.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tileWaiters) == 0 {
		return nil
	}
	w := s.tileWaiters[0]
	s.tileWaiters = s.tileWaiters[1:]
	return w
}

func (s *RemoteStore) takePropWaiter() chan protocol.Properties {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.propWaiters) == 0 {
		return nil
	}
	w := s.propWaiters[0]
	s.propWaiters = s.propWaiters[1:]
	return w
}

func (s *RemoteStore) dropTileWaiter(waiter chan protocol.Tile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.tileWaiters {
		if w == waiter {
			s.tileWaiters = append(s.tileWaiters[:i], s.tileWaiters[i+1:]...)
			return
		}
	}
}

func (s *RemoteStore) dropPropWaiter(waiter chan protocol.Properties) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.propWaiters {
		if w == waiter {
			s.propWaiters = append(s.propWaiters[:i], s.propWaiters[i+1:]...)
			return
		}
	}
}
