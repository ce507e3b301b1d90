package hostsim_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tilepad/twitch-inspector/internal/channel"
	"github.com/tilepad/twitch-inspector/internal/hostsim"
	"github.com/tilepad/twitch-inspector/internal/protocol"
)

func startSim(t *testing.T, config hostsim.Config) string {
	t.Helper()
	srv := httptest.NewServer(hostsim.New(config).Handler())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, endpoint string) *channel.Client {
	t.Helper()
	client, err := channel.Dial(context.Background(), endpoint)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func next(t *testing.T, c *channel.Client, want protocol.Type) protocol.Message {
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

func TestTileAndPropertiesRoundTrip(t *testing.T) {
	endpoint := startSim(t, hostsim.Config{
		ActionID:          "send_message",
		InitialProperties: map[string]any{"message": "hello"},
	})
	client := dial(t, endpoint)

	if err := client.Send(protocol.GetTile{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	tile := next(t, client, protocol.TypeTile).(protocol.Tile)
	if tile.ActionID != "send_message" {
		t.Errorf("ActionID = %v, want send_message", tile.ActionID)
	}

	if err := client.Send(protocol.GetProperties{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	props := next(t, client, protocol.TypeProperties).(protocol.Properties)
	if props.Properties["message"] != "hello" {
		t.Errorf("message = %v, want hello", props.Properties["message"])
	}
}

func TestSetPropertyPushesToOtherConnections(t *testing.T) {
	endpoint := startSim(t, hostsim.Config{ActionID: "marker"})
	writer := dial(t, endpoint)
	watcher := dial(t, endpoint)

	if err := writer.Send(protocol.SetProperty{Name: "description", Value: "clip this"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	props := next(t, watcher, protocol.TypeProperties).(protocol.Properties)
	if props.Properties["description"] != "clip this" {
		t.Errorf("description = %v, want %q", props.Properties["description"], "clip this")
	}
}

func TestAuthorizationWalk(t *testing.T) {
	endpoint := startSim(t, hostsim.Config{
		InitialState: protocol.StateNotAuthenticated,
		AuthDelay:    10 * time.Millisecond,
	})
	client := dial(t, endpoint)

	if err := client.Send(protocol.OpenAuthURL{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	first := next(t, client, protocol.TypeState).(protocol.State)
	if first.State != protocol.StateLoading {
		t.Errorf("first state = %v, want LOADING", first.State)
	}

	second := next(t, client, protocol.TypeState).(protocol.State)
	if second.State != protocol.StateAuthenticated {
		t.Errorf("second state = %v, want AUTHENTICATED", second.State)
	}
}

func TestLogoutResetsState(t *testing.T) {
	endpoint := startSim(t, hostsim.Config{InitialState: protocol.StateAuthenticated})
	client := dial(t, endpoint)

	if err := client.Send(protocol.Logout{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	state := next(t, client, protocol.TypeState).(protocol.State)
	if state.State != protocol.StateNotAuthenticated {
		t.Errorf("state = %v, want NOT_AUTHENTICATED", state.State)
	}
}

func TestCloseDropsConnections(t *testing.T) {
	sim := hostsim.New(hostsim.Config{})
	srv := httptest.NewServer(sim.Handler())
	t.Cleanup(srv.Close)
	client := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))

	// One round trip so the connection is registered
	if err := client.Send(protocol.GetState{}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	next(t, client, protocol.TypeState)

	sim.Close()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-client.Messages():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Messages() did not close after simulator Close()")
		}
	}
}
