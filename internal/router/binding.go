package router

import (
	"strconv"

	"github.com/tilepad/twitch-inspector/internal/tiles"
)

// Binding ties one form field to one named tile property,
// bidirectionally and without feedback loops: inbound snapshots set
// the displayed value, outbound writes happen only on finalized user
// edits.
//
// A binding starts disabled and is enabled by the first relevant
// snapshot. It is never re-disabled; once the authoritative value has
// been seen, edits are always safe.
type Binding struct {
	action  ActionID
	name    string
	numeric bool

	enabled bool
	value   string
}

// NewBinding creates a string-valued binding for one property of one
// action's screen.
func NewBinding(action ActionID, name string) *Binding {
	return &Binding{action: action, name: name}
}

// newNumericBinding creates a binding whose outbound writes coerce the
// field text to a number. No current screen has a free-form numeric
// field; the selection list covers the numeric case.
func newNumericBinding(action ActionID, name string) *Binding {
	return &Binding{action: action, name: name, numeric: true}
}

// Name returns the bound property name.
func (b *Binding) Name() string { return b.name }

// Enabled reports whether the field may be edited yet.
func (b *Binding) Enabled() bool { return b.enabled }

// Value returns the current displayed value.
func (b *Binding) Value() string { return b.value }

// ApplySnapshot populates the field from a property snapshot and
// enables it. Snapshots for a different active action are ignored to
// prevent cross-action field bleed; the return value reports whether
// the snapshot was applied.
func (b *Binding) ApplySnapshot(active ActionID, props tiles.Properties) bool {
	if active != b.action {
		return false
	}

	if b.numeric {
		if n, ok := props.Number(b.name); ok {
			b.value = strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			b.value = ""
		}
	} else {
		b.value = props.String(b.name)
	}

	b.enabled = true
	return true
}

// Commit records a finalized user edit and writes it through the
// store. Numeric bindings coerce the text first; text that does not
// parse writes nothing. Commits before the field is enabled are
// dropped, since the field would be overwriting state it never saw.
func (b *Binding) Commit(store tiles.Store, raw string) {
	if !b.enabled {
		return
	}
	b.value = raw

	if b.numeric {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return
		}
		store.SetProperty(b.name, n)
		return
	}

	store.SetProperty(b.name, raw)
}

// Selection binds a property backed by a fixed set of numeric options
// (the ad break lengths). Unlike a free-form Binding it tracks an
// option index rather than text.
type Selection struct {
	action  ActionID
	name    string
	options []int

	enabled bool
	index   int
}

// NewSelection creates a selection over the given option values with
// nothing selected.
func NewSelection(action ActionID, name string, options []int) *Selection {
	return &Selection{
		action:  action,
		name:    name,
		options: options,
		index:   -1,
	}
}

// Options returns the fixed option values.
func (s *Selection) Options() []int { return s.options }

// Enabled reports whether the selection may be changed yet.
func (s *Selection) Enabled() bool { return s.enabled }

// Index returns the selected option index, or -1 when nothing is
// selected.
func (s *Selection) Index() int { return s.index }

// Value returns the selected option value.
func (s *Selection) Value() (int, bool) {
	if s.index < 0 || s.index >= len(s.options) {
		return 0, false
	}
	return s.options[s.index], true
}

// ApplySnapshot selects the first option whose value equals the stored
// property. An absent property leaves the current selection unchanged.
// Snapshots for a different active action are ignored.
func (s *Selection) ApplySnapshot(active ActionID, props tiles.Properties) bool {
	if active != s.action {
		return false
	}
	s.enabled = true

	n, ok := props.Number(s.name)
	if !ok {
		return true
	}

	for i, opt := range s.options {
		if float64(opt) == n {
			s.index = i
			break
		}
	}
	return true
}

// Select records a user choice and writes it through the store.
// Out-of-range indexes are ignored.
func (s *Selection) Select(store tiles.Store, index int) {
	if !s.enabled || index < 0 || index >= len(s.options) {
		return
	}
	s.index = index
	store.SetProperty(s.name, s.options[index])
}
