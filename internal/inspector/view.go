package inspector

import (
	"fmt"
	"strings"

	"github.com/tilepad/twitch-inspector/internal/router"
	"github.com/tilepad/twitch-inspector/internal/urls"
)

// View renders the currently visible screen inside the shared
// application container.
func (m Model) View() string {
	var content string

	switch m.screens.current {
	case router.ScreenConnecting:
		content = m.viewConnecting()
	case router.ScreenAuthorize:
		content = m.viewAuthorize()
	case router.ScreenSendMessage:
		content = m.viewSendMessage()
	case router.ScreenMarker:
		content = m.viewMarker()
	case router.ScreenAdBreak:
		content = m.viewAdBreak()
	case router.ScreenNoOptions:
		content = m.viewNoOptions()
	default:
		content = "Unknown screen"
	}

	return RenderApplicationContainer(content, m.help.View(m.keys), m.Width, m.Height)
}

func (m Model) viewConnecting() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Connecting"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s Waiting for the Twitch plugin...", m.spinner.View()))

	if m.bootstrapErr != nil {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.bootstrapErr)))
	}

	return b.String()
}

func (m Model) viewAuthorize() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Twitch Authorization Required"))
	b.WriteString("\n")
	b.WriteString("This plugin needs access to your Twitch account.\n\n")

	if m.authorizing {
		b.WriteString(fmt.Sprintf("%s Waiting for authorization in your browser...", m.spinner.View()))
	} else {
		b.WriteString(ButtonStyle.Render("Authorize with Twitch"))
		b.WriteString("\n\n")
		b.WriteString(SubtitleStyle.Render("Press enter to open the authorization page"))
		b.WriteString("\n")
		b.WriteString(SubtitleStyle.Render("More about the flow: " + urls.TwitchAuthorization))
	}

	return b.String()
}

func (m Model) viewSendMessage() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Send Chat Message"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Message"))
	b.WriteString("\n")

	if !m.messageBinding.Enabled() {
		b.WriteString(DisabledStyle.Render("Loading current value..."))
	} else {
		b.WriteString(m.messageInput.View())
	}

	return b.String()
}

func (m Model) viewMarker() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Stream Marker"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Description"))
	b.WriteString("\n")

	if !m.markerBinding.Enabled() {
		b.WriteString(DisabledStyle.Render("Loading current value..."))
	} else {
		b.WriteString(m.markerInput.View())
	}

	return b.String()
}

func (m Model) viewAdBreak() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Ad Break"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Duration"))
	b.WriteString("\n")

	if !m.adBreak.Enabled() {
		b.WriteString(DisabledStyle.Render("Loading current value..."))
		return b.String()
	}

	for i, length := range m.adBreak.Options() {
		label := fmt.Sprintf("%d seconds", length)
		if i == m.adBreak.Index() {
			label += " (current)"
		}
		b.WriteString(RenderOption(label, i == m.adCursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("Accepted lengths: " + urls.TwitchCommercialDocs))

	return b.String()
}

func (m Model) viewNoOptions() string {
	var b strings.Builder

	b.WriteString(RenderTitle("No Options"))
	b.WriteString("\n")
	b.WriteString(SubtitleStyle.Render("This action has no configurable options."))

	return b.String()
}
