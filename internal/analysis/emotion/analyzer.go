package emotion

import (
	"sort"
	"strings"
)

// Lexical emotion scorer. This is the last-resort capability provider when
// no model backend can run: keyword buckets per label, scores normalized to
// a rough confidence.

// Score is one label with its lexical confidence.
type Score struct {
	Label      string
	Confidence float64
}

var keywordBuckets = map[string][]string{
	"joy": {
		"happy", "glad", "joy", "wonderful", "great news", "delighted", "thrilled",
	},
	"gratitude": {
		"grateful", "thankful", "appreciate", "blessed",
	},
	"love": {
		"love", "beloved", "dear to me", "cherish",
	},
	"sadness": {
		"sad", "unhappy", "cry", "crying", "depressed", "heartbroken", "miserable",
		"down", "blue", "tearful",
	},
	"grief": {
		"grief", "mourning", "passed away", "died", "death", "funeral", "miss him",
		"miss her", "miss them",
	},
	"fear": {
		"scared", "afraid", "terrified", "fear", "frightened", "dread",
	},
	"nervousness": {
		"anxious", "nervous", "worried", "uneasy", "panicking", "on edge",
	},
	"anger": {
		"angry", "furious", "rage", "mad", "hate", "livid", "outraged",
	},
	"annoyance": {
		"annoyed", "irritated", "frustrated", "fed up", "sick of",
	},
	"confusion": {
		"confused", "don't understand", "dont understand", "lost", "unclear", "puzzled",
	},
	"disappointment": {
		"disappointed", "let down", "hopeless", "helpless", "gave up",
	},
}

// Analyze scores text against the keyword buckets and returns the matched
// labels ordered by descending confidence. An empty slice means the lexicon
// saw nothing; the caller decides what neutral means.
func Analyze(text string) []Score {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil
	}

	hits := make(map[string]int)
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				hits[label]++
			}
		}
	}

	scores := make([]Score, 0, len(hits))
	for label, count := range hits {
		confidence := 0.35 + 0.15*float64(count)
		if confidence > 0.85 {
			confidence = 0.85
		}
		scores = append(scores, Score{Label: label, Confidence: confidence})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Confidence == scores[j].Confidence {
			return scores[i].Label < scores[j].Label
		}
		return scores[i].Confidence > scores[j].Confidence
	})

	return scores
}
