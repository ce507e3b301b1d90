package router

import "github.com/tilepad/twitch-inspector/internal/protocol"

// ActionID identifies which action variant a tile performs. Immutable
// for the lifetime of one view session.
type ActionID string

// ActionNone is the sentinel for a tile whose action is not (yet)
// known. It is distinct from every real action id.
const ActionNone ActionID = ""

// Action ids the plugin ships. Only some of them have extra
// configuration; the rest share the no-options screen.
const (
	ActionSendMessage  ActionID = "send_message"
	ActionClearChat    ActionID = "clear_chat"
	ActionEmoteOnly    ActionID = "emote_only"
	ActionFollowerOnly ActionID = "follower_only"
	ActionSubOnly      ActionID = "sub_only"
	ActionSlowMode     ActionID = "slow_mode"
	ActionAdBreak      ActionID = "ad_break"
	ActionMarker       ActionID = "marker"
	ActionCreateClip   ActionID = "create_clip"
	ActionOpenClip     ActionID = "open_clip"
	ActionViewerCount  ActionID = "viewer_count"
)

// ScreenID identifies one of the inspector's screens.
type ScreenID string

const (
	// ScreenConnecting is shown while the backend state is loading
	ScreenConnecting ScreenID = "connecting"
	// ScreenAuthorize prompts the user to authorize with Twitch
	ScreenAuthorize ScreenID = "authorize"
	// ScreenSendMessage configures the chat message to send
	ScreenSendMessage ScreenID = "send-message"
	// ScreenAdBreak configures the ad break length
	ScreenAdBreak ScreenID = "ad-break"
	// ScreenMarker configures the stream marker description
	ScreenMarker ScreenID = "marker"
	// ScreenNoOptions is shown for actions without configuration
	ScreenNoOptions ScreenID = "no-options"
)

// authenticatedScreens maps an action id to its configuration screen.
// Actions without an entry share the no-options screen.
var authenticatedScreens = map[ActionID]ScreenID{
	ActionSendMessage: ScreenSendMessage,
	ActionAdBreak:     ScreenAdBreak,
	ActionMarker:      ScreenMarker,
}

// Route computes the one visible screen for a (state, action) pair.
// It is total: every input maps to exactly one screen.
func Route(state protocol.ConnectionState, action ActionID) ScreenID {
	switch state {
	case protocol.StateNotAuthenticated:
		return ScreenAuthorize
	case protocol.StateAuthenticated:
		if screen, ok := authenticatedScreens[action]; ok {
			return screen
		}
		return ScreenNoOptions
	default:
		// LOADING, the unset sentinel, and unknown states all show
		// the connecting screen
		return ScreenConnecting
	}
}
