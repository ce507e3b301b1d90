package inspector

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tilepad/twitch-inspector/internal/logging"
	"github.com/tilepad/twitch-inspector/internal/protocol"
	"github.com/tilepad/twitch-inspector/internal/router"
	"github.com/tilepad/twitch-inspector/internal/tiles"
)

// AdBreakLengths are the commercial lengths Twitch accepts, in seconds.
var AdBreakLengths = []int{30, 60, 90, 120, 150, 180}

// Property names used by the configurable actions.
const (
	propMessage     = "message"
	propDescription = "description"
	propLength      = "length"
)

// Messages produced by background commands
type bootstrapDoneMsg struct {
	tile  tiles.Tile
	props tiles.Properties
	err   error
}

type backendMsg struct {
	msg protocol.Message
}

type eventsClosedMsg struct{}

// keyMap defines the key bindings shared by all screens
type keyMap struct {
	Confirm key.Binding
	Up      key.Binding
	Down    key.Binding
	Logout  key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Logout, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Up, k.Down},
		{k.Logout, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// screenTracker records the currently visible screen. Showing the
// already-visible screen is a no-op, so redundant applies never
// disturb in-progress edits.
type screenTracker struct {
	current router.ScreenID
}

func (s *screenTracker) Show(screen router.ScreenID) {
	s.current = screen
}

// Model is the top-level coordinator for the inspector view. Screen
// choice is owned by the router; the model translates backend
// messages into router updates and user input into property writes.
type Model struct {
	store  tiles.Store
	sender router.Sender
	events <-chan protocol.Message

	screens *screenTracker
	router  *router.Router

	// Form state per configurable action
	messageInput   textinput.Model
	markerInput    textinput.Model
	messageBinding *router.Binding
	markerBinding  *router.Binding
	adBreak        *router.Selection
	adCursor       int

	// UI state
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	authorizing  bool
	bootstrapErr error
	Width        int
	Height       int
}

// New creates an inspector model wired to the given store and channel.
// The events channel carries backend messages not claimed by the
// store's request/response matching (state changes, property pushes).
func New(store tiles.Store, sender router.Sender, events <-chan protocol.Message) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	messageInput := textinput.New()
	messageInput.Placeholder = "Message to send"
	messageInput.CharLimit = 500

	markerInput := textinput.New()
	markerInput.Placeholder = "Marker description"
	markerInput.CharLimit = 140

	screens := &screenTracker{}

	return Model{
		store:   store,
		sender:  sender,
		events:  events,
		screens: screens,
		router:  router.New(screens),

		messageInput:   messageInput,
		markerInput:    markerInput,
		messageBinding: router.NewBinding(router.ActionSendMessage, propMessage),
		markerBinding:  router.NewBinding(router.ActionMarker, propDescription),
		adBreak:        router.NewSelection(router.ActionAdBreak, propLength, AdBreakLengths),

		spinner: s,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

// Init starts the fixed startup sequence and the backend event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.bootstrapCmd(),
		waitForBackend(m.events),
	)
}

// bootstrapCmd resolves the tile, requests the connection state and
// fetches the initial property snapshot, in that order.
func (m Model) bootstrapCmd() tea.Cmd {
	store, sender := m.store, m.sender
	return func() tea.Msg {
		tile, props, err := router.Bootstrap(context.Background(), store, sender)
		return bootstrapDoneMsg{tile: tile, props: props, err: err}
	}
}

// waitForBackend delivers the next uncorrelated backend message.
func waitForBackend(events <-chan protocol.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return backendMsg{msg: msg}
	}
}

// Update handles all messages and routes them to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootstrapDoneMsg:
		return m.handleBootstrap(msg)

	case backendMsg:
		return m.handleBackend(msg.msg)

	case eventsClosedMsg:
		logging.Info("backend channel closed, exiting")
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleBootstrap applies the startup results: the tile's action id
// picks the screen family, and the property snapshot seeds the forms.
func (m Model) handleBootstrap(msg bootstrapDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.bootstrapErr = msg.err
		return m, nil
	}

	m.router.SetAction(router.ActionID(msg.tile.ActionID))
	m.applySnapshot(msg.props)
	return m, m.focusCmd()
}

// handleBackend processes one uncorrelated backend message.
func (m Model) handleBackend(msg protocol.Message) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case protocol.State:
		if msg.State.Known() {
			m.authorizing = false
		}
		m.router.HandleState(msg.State)
		return m, tea.Batch(m.focusCmd(), waitForBackend(m.events))

	case protocol.Properties:
		m.applySnapshot(tiles.Properties(msg.Properties))
		return m, waitForBackend(m.events)
	}

	// Unknown message types are deliberately ignored.
	return m, waitForBackend(m.events)
}

// applySnapshot feeds a property snapshot to every binding. Each
// binding ignores snapshots for foreign actions, so this is safe to
// call unconditionally.
func (m *Model) applySnapshot(props tiles.Properties) {
	action := m.router.Action()

	if m.messageBinding.ApplySnapshot(action, props) && !m.messageInput.Focused() {
		m.messageInput.SetValue(m.messageBinding.Value())
	}
	if m.markerBinding.ApplySnapshot(action, props) && !m.markerInput.Focused() {
		m.markerInput.SetValue(m.markerBinding.Value())
	}
	if m.adBreak.ApplySnapshot(action, props) && m.adBreak.Index() >= 0 {
		m.adCursor = m.adBreak.Index()
	}
}

// focusCmd moves keyboard focus to match the visible screen.
func (m *Model) focusCmd() tea.Cmd {
	switch m.screens.current {
	case router.ScreenSendMessage:
		if !m.messageInput.Focused() {
			m.messageInput.Focus()
			return textinput.Blink
		}
	case router.ScreenMarker:
		if !m.markerInput.Focused() {
			m.markerInput.Focus()
			return textinput.Blink
		}
	default:
		m.messageInput.Blur()
		m.markerInput.Blur()
	}
	return nil
}

// handleKey routes key presses to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Logout) {
		if m.router.State() == protocol.StateAuthenticated {
			if err := m.sender.Send(protocol.Logout{}); err != nil {
				logging.Error("failed to send logout", zap.Error(err))
			}
		}
		return m, nil
	}

	switch m.screens.current {
	case router.ScreenAuthorize:
		if key.Matches(msg, m.keys.Confirm) && !m.authorizing {
			if err := m.sender.Send(protocol.OpenAuthURL{}); err != nil {
				logging.Error("failed to request authorization", zap.Error(err))
				return m, nil
			}
			m.authorizing = true
		}
		return m, nil

	case router.ScreenSendMessage:
		if key.Matches(msg, m.keys.Confirm) {
			m.messageBinding.Commit(m.store, m.messageInput.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.messageInput, cmd = m.messageInput.Update(msg)
		return m, cmd

	case router.ScreenMarker:
		if key.Matches(msg, m.keys.Confirm) {
			m.markerBinding.Commit(m.store, m.markerInput.Value())
			return m, nil
		}
		var cmd tea.Cmd
		m.markerInput, cmd = m.markerInput.Update(msg)
		return m, cmd

	case router.ScreenAdBreak:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.adCursor > 0 {
				m.adCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.adCursor < len(m.adBreak.Options())-1 {
				m.adCursor++
			}
		case key.Matches(msg, m.keys.Confirm):
			m.adBreak.Select(m.store, m.adCursor)
		}
		return m, nil
	}

	return m, nil
}

// CurrentScreen returns the screen the router last applied.
func (m Model) CurrentScreen() router.ScreenID {
	return m.screens.current
}
