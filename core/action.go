package core

// Action is the opaque tagged event value flowing through a simulation.
// The engine imposes no structure beyond the Type discriminator: Payload is
// caller-defined and may be nil, a primitive, or a struct. Actions are plain
// values without identity; the queue holds them by value and agent handlers
// switch on Type to select behavior.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// NewAction constructs an action with the given type tag and payload.
func NewAction(actionType string, payload any) Action {
	return Action{Type: actionType, Payload: payload}
}
