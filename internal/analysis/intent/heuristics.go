package intent

import (
	"regexp"
	"strings"

	model "github.com/saarthi-app/backend/internal/model/intent"
)

// Rule-based fast path and keyword heuristics used when the zero-shot
// backend is unavailable or fails.

var casualPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(hi|hello|hey|namaste|good morning|good evening|good afternoon)\b`),
	regexp.MustCompile(`^(who are you|what are you|what is this|how does this work)\b`),
	regexp.MustCompile(`^(thank you|thanks|bye|goodbye)\b`),
}

var greetingTokens = []string{"hi", "hello", "hey", "thanks", "bye"}

var emotionalKeywords = []string{
	"feel", "feeling", "anxious", "worried", "sad", "depressed",
	"stressed", "confused", "guilty", "angry", "frustrated",
	"overwhelmed", "scared", "afraid", "hurt", "pain", "suffering",
	"lost", "don't know", "dont know", "career", "life", "future",
	"problem", "issue", "struggle", "difficult", "hard", "tough",
	"upset", "disappointed", "hopeless", "helpless", "stuck",
}

var spiritualKeywords = []string{
	"dharma", "karma", "krishna", "arjuna", "gita", "bhagavad",
	"yoga", "meditation", "enlightenment", "moksha", "atman",
	"brahman", "duty", "purpose", "meaning", "wisdom", "teaching",
}

// CasualByRules reports whether text is small talk by pattern alone: a
// casual prefix, or a very short input containing a greeting token.
func CasualByRules(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, pattern := range casualPatterns {
		if pattern.MatchString(normalized) {
			return true
		}
	}

	if len(strings.Fields(normalized)) <= 3 {
		for _, token := range greetingTokens {
			if strings.Contains(normalized, token) {
				return true
			}
		}
	}

	return false
}

// ScoreKeywords classifies by counting emotional vs spiritual keyword hits.
// The strictly larger nonzero count wins at 0.7; ties and zero-zero fall
// back to casual_chat at 0.6.
func ScoreKeywords(text string) model.Classification {
	normalized := strings.ToLower(text)

	emotionalScore := 0
	for _, kw := range emotionalKeywords {
		if strings.Contains(normalized, kw) {
			emotionalScore++
		}
	}

	spiritualScore := 0
	for _, kw := range spiritualKeywords {
		if strings.Contains(normalized, kw) {
			spiritualScore++
		}
	}

	switch {
	case emotionalScore > spiritualScore && emotionalScore > 0:
		return model.Classification{Intent: model.EmotionalQuery, Confidence: 0.7}
	case spiritualScore > emotionalScore && spiritualScore > 0:
		return model.Classification{Intent: model.SpiritualGuidance, Confidence: 0.7}
	default:
		return model.Classification{Intent: model.CasualChat, Confidence: 0.6}
	}
}
