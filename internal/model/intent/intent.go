package intent

import "fmt"

// Intent is the coarse classification of a user turn's purpose.
type Intent string

const (
	CasualChat        Intent = "casual_chat"
	EmotionalQuery    Intent = "emotional_query"
	SpiritualGuidance Intent = "spiritual_guidance"
)

// Classification pairs an intent label with the classifier's confidence.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// New validates the pair and returns a Classification. Confidence must be in [0,1].
func New(label Intent, confidence float64) (Classification, error) {
	switch label {
	case CasualChat, EmotionalQuery, SpiritualGuidance:
	default:
		return Classification{}, fmt.Errorf("unknown intent label %q", label)
	}
	if confidence < 0 || confidence > 1 {
		return Classification{}, fmt.Errorf("intent confidence %f out of range [0,1]", confidence)
	}
	return Classification{Intent: label, Confidence: confidence}, nil
}

// NeedsVerses reports whether the pipeline should retrieve verses for this intent.
func (i Intent) NeedsVerses() bool {
	return i == EmotionalQuery || i == SpiritualGuidance
}

// NeedsEmotion reports whether the pipeline should run emotion detection.
func (i Intent) NeedsEmotion() bool {
	return i == EmotionalQuery
}
