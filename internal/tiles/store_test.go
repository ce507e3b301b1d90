package tiles

import (
	"context"
	"testing"
	"time"

	"github.com/tilepad/twitch-inspector/internal/protocol"
)

// scriptedChannel is a fake plugin channel: Send records outbound
// messages and inbound messages are pushed by the test.
type scriptedChannel struct {
	sent    chan protocol.Message
	inbound chan protocol.Message
}

func newScriptedChannel() *scriptedChannel {
	return &scriptedChannel{
		sent:    make(chan protocol.Message, 16),
		inbound: make(chan protocol.Message, 16),
	}
}

func (c *scriptedChannel) Send(msg protocol.Message) error {
	c.sent <- msg
	return nil
}

func (c *scriptedChannel) Messages() <-chan protocol.Message {
	return c.inbound
}

func (c *scriptedChannel) push(msg protocol.Message) {
	c.inbound <- msg
}

func TestRemoteStoreGetTile(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	type result struct {
		tile Tile
		err  error
	}
	done := make(chan result, 1)
	go func() {
		tile, err := store.GetTile(context.Background())
		done <- result{tile, err}
	}()

	// The request goes out first; answer it once it is on the wire
	msg := <-ch.sent
	if msg.MessageType() != protocol.TypeGetTile {
		t.Errorf("sent = %v, want GET_TILE", msg.MessageType())
	}
	ch.push(protocol.Tile{ActionID: "ad_break"})

	res := <-done
	if res.err != nil {
		t.Fatalf("GetTile() error = %v", res.err)
	}
	if res.tile.ActionID != "ad_break" {
		t.Errorf("ActionID = %v, want ad_break", res.tile.ActionID)
	}
}

func TestRemoteStoreGetProperties(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	type result struct {
		props Properties
		err   error
	}
	done := make(chan result, 1)
	go func() {
		props, err := store.GetProperties(context.Background())
		done <- result{props, err}
	}()

	msg := <-ch.sent
	if msg.MessageType() != protocol.TypeGetProperties {
		t.Errorf("sent = %v, want GET_PROPERTIES", msg.MessageType())
	}
	ch.push(protocol.Properties{Properties: map[string]any{"message": "hi"}})

	res := <-done
	if res.err != nil {
		t.Fatalf("GetProperties() error = %v", res.err)
	}
	if res.props.String("message") != "hi" {
		t.Errorf("message = %v, want hi", res.props.String("message"))
	}
}

func TestRemoteStoreGetTileContextCancel(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.GetTile(ctx); err == nil {
		t.Fatal("GetTile() error = nil, want context error")
	}

	// A late response with no waiter must be dropped without incident
	ch.push(protocol.Tile{ActionID: "marker"})
	time.Sleep(20 * time.Millisecond)

	select {
	case msg := <-store.Events():
		t.Errorf("Events() delivered %v, late TILE should be dropped", msg.MessageType())
	default:
	}
}

func TestRemoteStoreForwardsUncorrelatedMessages(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	ch.push(protocol.State{State: protocol.StateAuthenticated})
	ch.push(protocol.ViewCount{Count: 7})

	first := <-store.Events()
	if first.MessageType() != protocol.TypeState {
		t.Errorf("first event = %v, want STATE", first.MessageType())
	}
	second := <-store.Events()
	if second.MessageType() != protocol.TypeViewCount {
		t.Errorf("second event = %v, want VIEW_COUNT", second.MessageType())
	}
}

func TestRemoteStorePropertiesPushWithoutFetch(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	// No pending GetProperties: the snapshot is an external change
	// push and must surface as an event
	ch.push(protocol.Properties{Properties: map[string]any{"length": float64(60)}})

	msg := <-store.Events()
	props, ok := msg.(protocol.Properties)
	if !ok {
		t.Fatalf("event = %T, want Properties", msg)
	}
	if Properties(props.Properties).String("length") != "" {
		// length is numeric; String should fall back to empty
		t.Errorf("String(length) = %q, want empty", Properties(props.Properties).String("length"))
	}
	if n, ok := Properties(props.Properties).Number("length"); !ok || n != 60 {
		t.Errorf("Number(length) = %v, %v, want 60, true", n, ok)
	}
}

func TestRemoteStoreChannelCloseReleasesWaiters(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	errc := make(chan error, 1)
	go func() {
		_, err := store.GetTile(context.Background())
		errc <- err
	}()

	// Give the fetch time to register its waiter, then drop the
	// connection
	time.Sleep(20 * time.Millisecond)
	close(ch.inbound)

	select {
	case err := <-errc:
		if err != ErrStoreClosed {
			t.Errorf("GetTile() error = %v, want ErrStoreClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("GetTile() did not return after channel close")
	}
}

func TestRemoteStoreSetProperty(t *testing.T) {
	ch := newScriptedChannel()
	store := NewRemoteStore(ch)

	store.SetProperty("message", "hello")

	msg := <-ch.sent
	set, ok := msg.(protocol.SetProperty)
	if !ok {
		t.Fatalf("sent = %T, want SetProperty", msg)
	}
	if set.Name != "message" || set.Value != "hello" {
		t.Errorf("sent = {%v %v}, want {message hello}", set.Name, set.Value)
	}
}

func TestPropertiesAccessors(t *testing.T) {
	props := Properties{
		"message": "hello",
		"length":  float64(300),
		"legacy":  "120",
	}

	if got := props.String("message"); got != "hello" {
		t.Errorf("String(message) = %q, want hello", got)
	}
	if got := props.String("missing"); got != "" {
		t.Errorf("String(missing) = %q, want empty", got)
	}
	if n, ok := props.Number("length"); !ok || n != 300 {
		t.Errorf("Number(length) = %v, %v, want 300, true", n, ok)
	}
	if n, ok := props.Number("legacy"); !ok || n != 120 {
		t.Errorf("Number(legacy) = %v, %v, want 120, true", n, ok)
	}
	if _, ok := props.Number("message"); ok {
		t.Error("Number(message) should not parse")
	}
}
