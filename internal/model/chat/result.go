package chat

import (
	"github.com/saarthi-app/backend/internal/model/emotion"
	"github.com/saarthi-app/backend/internal/model/intent"
	"github.com/saarthi-app/backend/internal/model/verse"
)

// Result is the response DTO assembled fresh for every chat turn. It is
// never persisted as-is.
type Result struct {
	Reflection       string           `json:"reflection"`
	Emotion          *emotion.Emotion `json:"emotion"`
	Verses           []verse.Verse    `json:"verses"`
	SessionID        string           `json:"session_id"`
	InteractionMode  string           `json:"interaction_mode"`
	Intent           intent.Intent    `json:"intent"`
	IntentConfidence float64          `json:"intent_confidence"`
	FallbackUsed     bool             `json:"fallback_used"`
}
