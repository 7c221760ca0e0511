package emotion

import "fmt"

// Emotion is a single detected emotion with its display metadata.
type Emotion struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Emoji      string  `json:"emoji"`
	Color      string  `json:"color"`
}

// New builds an Emotion for label, resolving emoji and color from the palette.
// Confidence must be in [0,1]; malformed backend scores are rejected here.
func New(label string, confidence float64) (Emotion, error) {
	if label == "" {
		return Emotion{}, fmt.Errorf("emotion label is empty")
	}
	if confidence < 0 || confidence > 1 {
		return Emotion{}, fmt.Errorf("emotion confidence %f out of range [0,1]", confidence)
	}
	glyph := Lookup(label)
	return Emotion{
		Label:      label,
		Confidence: confidence,
		Emoji:      glyph.Emoji,
		Color:      glyph.Color,
	}, nil
}

// Neutral is the synthetic entry substituted when detection yields nothing
// or the backend is unavailable.
func Neutral() Emotion {
	return Emotion{Label: "neutral", Confidence: 0.5, Emoji: neutralGlyph.Emoji, Color: neutralGlyph.Color}
}
