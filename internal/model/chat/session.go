package chat

import "time"

// Session is one bounded conversation with its own lifecycle. After EndedAt
// is set the session is terminal and accepts no further turns.
type Session struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId,omitempty"`
	InteractionMode string     `json:"interactionMode"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	MessageCount    int        `json:"messageCount"`
	Summary         string     `json:"summary,omitempty"`
}

// Ended reports whether the session reached its terminal state.
func (s Session) Ended() bool {
	return s.EndedAt != nil
}
