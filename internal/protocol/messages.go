package protocol

import "encoding/json"

// Type is the wire discriminator carried in every message's "type" field.
type Type string

const (
	TypeGetState      Type = "GET_STATE"
	TypeState         Type = "STATE"
	TypeOpenAuthURL   Type = "OPEN_AUTH_URL"
	TypeLogout        Type = "LOGOUT"
	TypeGetViewCount  Type = "GET_VIEW_COUNT"
	TypeViewCount     Type = "VIEW_COUNT"
	TypeGetTile       Type = "GET_TILE"
	TypeTile          Type = "TILE"
	TypeGetProperties Type = "GET_PROPERTIES"
	TypeProperties    Type = "PROPERTIES"
	TypeSetProperty   Type = "SET_PROPERTY"
)

// Message is implemented by every protocol message.
type Message interface {
	// MessageType returns the wire discriminator for this message.
	MessageType() Type
}

// GetState asks the backend for the current connection state.
// The backend answers with a State message.
type GetState struct{}

func (GetState) MessageType() Type { return TypeGetState }

// State reports the backend's connection state. Sent both as an answer
// to GetState and unsolicited whenever the state changes.
type State struct {
	State ConnectionState `json:"state"`
}

func (State) MessageType() Type { return TypeState }

// OpenAuthURL asks the backend to open the Twitch authorization page
// in the user's browser. There is no direct response; completion shows
// up as a later State push.
type OpenAuthURL struct{}

func (OpenAuthURL) MessageType() Type { return TypeOpenAuthURL }

// Logout asks the backend to discard stored credentials.
type Logout struct{}

func (Logout) MessageType() Type { return TypeLogout }

// GetViewCount asks for the current Twitch viewer count.
type GetViewCount struct{}

func (GetViewCount) MessageType() Type { return TypeGetViewCount }

// ViewCount is the answer to GetViewCount.
type ViewCount struct {
	Count int `json:"count"`
}

func (ViewCount) MessageType() Type { return TypeViewCount }

// GetTile asks for the tile this view is attached to.
type GetTile struct{}

func (GetTile) MessageType() Type { return TypeGetTile }

// Tile describes the active tile. ActionID identifies which action
// variant the tile performs ("send_message", "marker", ...) and may be
// empty for tiles without one.
type Tile struct {
	ActionID string `json:"actionId"`
}

func (Tile) MessageType() Type { return TypeTile }

// GetProperties asks for the tile's current property values.
type GetProperties struct{}

func (GetProperties) MessageType() Type { return TypeGetProperties }

// Properties carries a snapshot of the tile's property values. Sent as
// an answer to GetProperties and pushed when properties change
// externally.
type Properties struct {
	Properties map[string]any `json:"properties"`
}

func (Properties) MessageType() Type { return TypeProperties }

// SetProperty persists one property value on the tile. Fire and
// forget; the backend does not acknowledge.
type SetProperty struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

func (SetProperty) MessageType() Type { return TypeSetProperty }

// Unknown is produced by Decode for messages whose type is not
// recognized. Handlers ignore it.
type Unknown struct {
	Raw json.RawMessage
	// RawType is the unrecognized discriminator value.
	RawType string
}

func (u Unknown) MessageType() Type { return Type(u.RawType) }
