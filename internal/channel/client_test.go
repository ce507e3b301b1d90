package channel

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tilepad/twitch-inspector/internal/hostsim"
	"github.com/tilepad/twitch-inspector/internal/protocol"
)

// startSim runs a host simulator behind httptest and returns its
// WebSocket endpoint.
func startSim(t *testing.T, config hostsim.Config) (*hostsim.Server, string) {
	t.Helper()
	sim := hostsim.New(config)
	srv := httptest.NewServer(sim.Handler())
	t.Cleanup(srv.Close)
	return sim, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor(t *testing.T, c *Client, want protocol.Type) protocol.Message {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg, ok := <-c.Messages():
			if !ok {
				t.Fatalf("channel closed while waiting for %s", want)
			}
			if msg.MessageType() == want {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestDialAndGetState(t *testing.T) {
	_, endpoint := startSim(t, hostsim.Config{
		InitialState: protocol.StateNotAuthenticated,
	})

	client, err := Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	if err := client.Send(protocol.GetState{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	msg := waitFor(t, client, protocol.TypeState)
	state := msg.(protocol.State)
	if state.State != protocol.StateNotAuthenticated {
		t.Errorf("State = %v, want %v", state.State, protocol.StateNotAuthenticated)
	}
}

func TestMessagesArriveInOrder(t *testing.T) {
	sim, endpoint := startSim(t, hostsim.Config{})

	client, err := Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	// Scripted state walk; the client must observe it in order
	states := []protocol.ConnectionState{
		protocol.StateLoading,
		protocol.StateAuthenticated,
		protocol.StateNotAuthenticated,
	}
	for _, s := range states {
		sim.SetState(s)
	}

	for i, want := range states {
		msg := waitFor(t, client, protocol.TypeState)
		if got := msg.(protocol.State).State; got != want {
			t.Errorf("state %d = %v, want %v", i, got, want)
		}
	}
}

func TestViewCountRequestResponse(t *testing.T) {
	sim, endpoint := startSim(t, hostsim.Config{ActionID: "viewer_count"})
	sim.SetViewCount(41)

	client, err := Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	if err := client.Send(protocol.GetViewCount{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	msg := waitFor(t, client, protocol.TypeViewCount)
	if got := msg.(protocol.ViewCount).Count; got != 42 {
		t.Errorf("Count = %v, want 42", got)
	}
}

func TestSendAfterCloseReturnsErrClosed(t *testing.T) {
	_, endpoint := startSim(t, hostsim.Config{})

	client, err := Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Second close must be safe
	_ = client.Close()

	if err := client.Send(protocol.GetState{}); err != ErrClosed {
		t.Errorf("Send() after close = %v, want ErrClosed", err)
	}
}

func TestDialFailureIsClassified(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/nope")
	if err == nil {
		t.Fatal("Dial() error = nil, want dial error")
	}
	if !IsDialError(err) {
		t.Errorf("IsDialError() = false for %v", err)
	}
}

func TestIdleConnectionStaysAlive(t *testing.T) {
	// Shrink the keepalive window so idling past the read deadline
	// fits in a test run.
	restoreWait, restoreInterval := pongWait, pingInterval
	pongWait = 250 * time.Millisecond
	pingInterval = 50 * time.Millisecond
	defer func() { pongWait, pingInterval = restoreWait, restoreInterval }()

	_, endpoint := startSim(t, hostsim.Config{
		InitialState: protocol.StateNotAuthenticated,
	})

	client, err := Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	// Several read deadlines pass with no data frames; pings must
	// keep the connection open.
	time.Sleep(4 * pongWait)

	if err := client.Send(protocol.GetState{}); err != nil {
		t.Fatalf("Send() after idle period error = %v", err)
	}
	waitFor(t, client, protocol.TypeState)
}

func TestMessagesChannelClosesWithConnection(t *testing.T) {
	sim, endpoint := startSim(t, hostsim.Config{})

	client, err := Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Close()

	// One round trip so the simulator has registered the connection
	if err := client.Send(protocol.GetState{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	waitFor(t, client, protocol.TypeState)

	// Drop the connection from the backend side
	sim.Close()

	select {
	case _, ok := <-client.Messages():
		if ok {
			// Draining a buffered message is fine; keep reading
			for range client.Messages() {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Messages() did not close after server shutdown")
	}
}
