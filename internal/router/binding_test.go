package router

import (
	"context"
	"testing"

	"github.com/tilepad/twitch-inspector/internal/tiles"
)

// recordingStore captures SetProperty writes.
type recordingStore struct {
	writes map[string]any
}

func newRecordingStore() *recordingStore {
	return &recordingStore{writes: make(map[string]any)}
}

func (r *recordingStore) GetTile(ctx context.Context) (tiles.Tile, error) {
	return tiles.Tile{}, nil
}

func (r *recordingStore) GetProperties(ctx context.Context) (tiles.Properties, error) {
	return nil, nil
}

func (r *recordingStore) SetProperty(name string, value any) {
	r.writes[name] = value
}

func TestBindingStartsDisabled(t *testing.T) {
	b := NewBinding(ActionSendMessage, "message")

	if b.Enabled() {
		t.Error("binding should start disabled")
	}
	if b.Value() != "" {
		t.Errorf("Value() = %q, want empty", b.Value())
	}
}

func TestBindingSnapshotPopulatesAndEnables(t *testing.T) {
	b := NewBinding(ActionSendMessage, "message")

	applied := b.ApplySnapshot(ActionSendMessage, tiles.Properties{"message": "hello chat"})
	if !applied {
		t.Fatal("ApplySnapshot() = false, want true")
	}
	if !b.Enabled() {
		t.Error("binding should be enabled after a snapshot")
	}
	if b.Value() != "hello chat" {
		t.Errorf("Value() = %q, want %q", b.Value(), "hello chat")
	}
}

func TestBindingSnapshotMissingPropertyEnablesEmpty(t *testing.T) {
	b := NewBinding(ActionMarker, "description")

	b.ApplySnapshot(ActionMarker, tiles.Properties{})

	if !b.Enabled() {
		t.Error("binding should be enabled even when the property is absent")
	}
	if b.Value() != "" {
		t.Errorf("Value() = %q, want empty", b.Value())
	}
}

func TestBindingIgnoresSnapshotForOtherAction(t *testing.T) {
	b := NewBinding(ActionSendMessage, "message")
	b.ApplySnapshot(ActionSendMessage, tiles.Properties{"message": "mine"})

	// A snapshot delivered while a different action is active must not
	// alter the value
	applied := b.ApplySnapshot(ActionMarker, tiles.Properties{"message": "someone else's"})
	if applied {
		t.Error("ApplySnapshot() = true for foreign action, want false")
	}
	if b.Value() != "mine" {
		t.Errorf("Value() = %q, want %q", b.Value(), "mine")
	}
}

func TestBindingNeverReDisables(t *testing.T) {
	b := NewBinding(ActionSendMessage, "message")
	b.ApplySnapshot(ActionSendMessage, tiles.Properties{"message": "first"})

	b.ApplySnapshot(ActionSendMessage, tiles.Properties{})
	if !b.Enabled() {
		t.Error("binding must stay enabled once populated")
	}
}

func TestBindingCommitWritesString(t *testing.T) {
	store := newRecordingStore()
	b := NewBinding(ActionSendMessage, "message")
	b.ApplySnapshot(ActionSendMessage, tiles.Properties{})

	b.Commit(store, "new message")

	if got := store.writes["message"]; got != "new message" {
		t.Errorf("write = %v, want %q", got, "new message")
	}
	if b.Value() != "new message" {
		t.Errorf("Value() = %q, want %q", b.Value(), "new message")
	}
}

func TestBindingCommitCoercesNumbers(t *testing.T) {
	store := newRecordingStore()
	b := newNumericBinding(ActionAdBreak, "length")
	b.ApplySnapshot(ActionAdBreak, tiles.Properties{})

	b.Commit(store, "90")

	if got := store.writes["length"]; got != float64(90) {
		t.Errorf("write = %v (%T), want 90 (float64)", got, got)
	}
}

func TestBindingCommitBeforeEnableIsDropped(t *testing.T) {
	store := newRecordingStore()
	b := NewBinding(ActionSendMessage, "message")

	b.Commit(store, "premature")

	if _, ok := store.writes["message"]; ok {
		t.Error("commit before first snapshot must not write")
	}
}

func TestBindingNumericCommitRejectsGarbage(t *testing.T) {
	store := newRecordingStore()
	b := newNumericBinding(ActionAdBreak, "length")
	b.ApplySnapshot(ActionAdBreak, tiles.Properties{})

	b.Commit(store, "ninety")

	if _, ok := store.writes["length"]; ok {
		t.Error("unparseable numeric text must not write")
	}
}

func TestBindingNumericSnapshotFormatsValue(t *testing.T) {
	b := newNumericBinding(ActionAdBreak, "length")
	b.ApplySnapshot(ActionAdBreak, tiles.Properties{"length": float64(300)})

	if b.Value() != "300" {
		t.Errorf("Value() = %q, want %q", b.Value(), "300")
	}
}

func TestSelectionSnapshotSelectsMatchingOption(t *testing.T) {
	s := NewSelection(ActionAdBreak, "length", []int{60, 300, 600})

	s.ApplySnapshot(ActionAdBreak, tiles.Properties{"length": float64(300)})

	if s.Index() != 1 {
		t.Errorf("Index() = %v, want 1", s.Index())
	}
	if v, ok := s.Value(); !ok || v != 300 {
		t.Errorf("Value() = %v, %v, want 300, true", v, ok)
	}
}

func TestSelectionSnapshotWithoutPropertyLeavesSelection(t *testing.T) {
	s := NewSelection(ActionAdBreak, "length", []int{60, 300, 600})
	s.ApplySnapshot(ActionAdBreak, tiles.Properties{"length": float64(600)})

	s.ApplySnapshot(ActionAdBreak, tiles.Properties{})

	if s.Index() != 2 {
		t.Errorf("Index() = %v, want 2 (unchanged)", s.Index())
	}
}

func TestSelectionSnapshotUnmatchedValueLeavesSelection(t *testing.T) {
	s := NewSelection(ActionAdBreak, "length", []int{60, 300, 600})

	s.ApplySnapshot(ActionAdBreak, tiles.Properties{"length": float64(45)})

	if s.Index() != -1 {
		t.Errorf("Index() = %v, want -1", s.Index())
	}
}

func TestSelectionIgnoresForeignAction(t *testing.T) {
	s := NewSelection(ActionAdBreak, "length", []int{60, 300, 600})

	applied := s.ApplySnapshot(ActionSendMessage, tiles.Properties{"length": float64(60)})

	if applied {
		t.Error("ApplySnapshot() = true for foreign action, want false")
	}
	if s.Index() != -1 {
		t.Errorf("Index() = %v, want -1", s.Index())
	}
}

func TestSelectionSelectWrites(t *testing.T) {
	store := newRecordingStore()
	s := NewSelection(ActionAdBreak, "length", []int{60, 300, 600})
	s.ApplySnapshot(ActionAdBreak, tiles.Properties{})

	s.Select(store, 2)

	if got := store.writes["length"]; got != 600 {
		t.Errorf("write = %v, want 600", got)
	}
	if s.Index() != 2 {
		t.Errorf("Index() = %v, want 2", s.Index())
	}
}

func TestSelectionSelectOutOfRange(t *testing.T) {
	store := newRecordingStore()
	s := NewSelection(ActionAdBreak, "length", []int{60, 300, 600})
	s.ApplySnapshot(ActionAdBreak, tiles.Properties{})

	s.Select(store, 7)

	if len(store.writes) != 0 {
		t.Errorf("writes = %v, want none", store.writes)
	}
	if s.Index() != -1 {
		t.Errorf("Index() = %v, want -1", s.Index())
	}
}
