package display

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tilepad/twitch-inspector/internal/logging"
	"github.com/tilepad/twitch-inspector/internal/protocol"
	"github.com/tilepad/twitch-inspector/internal/router"
)

// DefaultPollInterval is how often the viewer count is refreshed.
const DefaultPollInterval = 2000 * time.Millisecond

// containerPadding is the margin kept around the digits, per side.
const containerPadding = 1

var (
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9146FF")).
			Bold(true)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type pollMsg time.Time

type backendMsg struct {
	msg protocol.Message
}

type eventsClosedMsg struct{}

// Model is the viewer count display. It owns the poll timer and
// renders the last count received.
type Model struct {
	sender   router.Sender
	events   <-chan protocol.Message
	interval time.Duration

	count     int
	haveCount bool

	spinner spinner.Model
	Width   int
	Height  int
}

// New creates a display model polling on the given interval. A zero
// interval means DefaultPollInterval.
func New(sender router.Sender, events <-chan protocol.Message, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = countStyle

	return Model{
		sender:   sender,
		events:   events,
		interval: interval,
		spinner:  s,
	}
}

// Init issues the first poll immediately and starts the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return pollMsg(time.Now()) },
		waitForBackend(m.events),
	)
}

func waitForBackend(events <-chan protocol.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return backendMsg{msg: msg}
	}
}

// Update handles poll ticks, backend messages and input.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollMsg:
		if err := m.sender.Send(protocol.GetViewCount{}); err != nil {
			logging.Error("failed to request viewer count", zap.Error(err))
		}
		return m, tea.Tick(m.interval, func(t time.Time) tea.Msg { return pollMsg(t) })

	case backendMsg:
		if vc, ok := msg.msg.(protocol.ViewCount); ok {
			m.count = vc.Count
			m.haveCount = true
		}
		return m, waitForBackend(m.events)

	case eventsClosedMsg:
		logging.Info("backend channel closed, exiting")
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the count as block digits sized to the terminal.
func (m Model) View() string {
	if !m.haveCount {
		return lipgloss.Place(
			m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			fmt.Sprintf("%s waiting for viewer count...", m.spinner.View()),
		)
	}

	text := strconv.Itoa(m.count)
	maxWidth := m.Width - 2*containerPadding
	maxHeight := m.Height - 2*containerPadding - 1 // one row for the caption
	scale := FitScale(text, maxWidth, maxHeight)

	digits := countStyle.Render(RenderGlyphs(text, scale))
	caption := captionStyle.Render("viewers")
	content := lipgloss.JoinVertical(lipgloss.Center, digits, caption)

	return lipgloss.Place(
		m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

// Count returns the last viewer count received.
func (m Model) Count() (int, bool) {
	return m.count, m.haveCount
}
