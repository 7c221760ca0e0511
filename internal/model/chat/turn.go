package chat

import (
	"time"

	"github.com/saarthi-app/backend/internal/model/emotion"
)

// Roles a turn can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation turn. Turns are append-only and ordered by
// Sequence, which is monotonically increasing per session with no gaps.
type Turn struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Emotion   *emotion.Emotion `json:"emotion,omitempty"`
	VerseID   string           `json:"verseId,omitempty"`
	Sequence  int              `json:"sequence"`
	CreatedAt time.Time        `json:"createdAt"`
}
