package protocol

import (
	"encoding/json"
	"fmt"
)

// envelope is the partial decode used to pick a message type before
// unmarshalling the full payload.
type envelope struct {
	Type Type `json:"type"`
}

// Encode marshals a message into its wire form: the message's JSON
// fields plus the "type" discriminator.
func Encode(msg Message) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", msg.MessageType(), err)
	}

	// Splice the discriminator into the object
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to re-read %s message: %w", msg.MessageType(), err)
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage, 1)
	}

	typeField, err := json.Marshal(msg.MessageType())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message type: %w", err)
	}
	fields["type"] = typeField

	return json.Marshal(fields)
}

// Decode parses a wire message into its concrete struct. Messages with
// an unrecognized type decode into Unknown; only malformed JSON or a
// missing discriminator is an error.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse message envelope: %w", err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("message has no type discriminator")
	}

	switch env.Type {
	case TypeGetState:
		return GetState{}, nil
	case TypeState:
		var msg State
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse STATE message: %w", err)
		}
		return msg, nil
	case TypeOpenAuthURL:
		return OpenAuthURL{}, nil
	case TypeLogout:
		return Logout{}, nil
	case TypeGetViewCount:
		return GetViewCount{}, nil
	case TypeViewCount:
		var msg ViewCount
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse VIEW_COUNT message: %w", err)
		}
		return msg, nil
	case TypeGetTile:
		return GetTile{}, nil
	case TypeTile:
		var msg Tile
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse TILE message: %w", err)
		}
		return msg, nil
	case TypeGetProperties:
		return GetProperties{}, nil
	case TypeProperties:
		var msg Properties
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse PROPERTIES message: %w", err)
		}
		return msg, nil
	case TypeSetProperty:
		var msg SetProperty
		if err := json.Unmarshal(data, &msg); err != nil {
			return nil, fmt.Errorf("failed to parse SET_PROPERTY message: %w", err)
		}
		return msg, nil
	default:
		// Unknown types are tolerated so newer backends can add
		// messages without breaking older inspectors
		return Unknown{Raw: append([]byte(nil), data...), RawType: string(env.Type)}, nil
	}
}
