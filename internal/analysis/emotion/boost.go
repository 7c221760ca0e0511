package emotion

import "strings"

// Keyword boosting sharpens model output for grief and anger, which the
// base classifier tends to score too low on short inputs.

var griefKeywords = []string{
	"lost", "death", "died", "father", "mother", "pet", "grief", "mourning",
	"funeral", "passed away", "gone", "miss", "lonely", "empty", "devastated",
}

var angerKeywords = []string{
	"angry", "mad", "furious", "rage", "hate", "frustrated", "annoyed",
	"pissed", "irritated", "upset", "livid", "outraged",
}

var griefLabels = map[string]bool{"sadness": true, "grief": true, "disappointment": true}

var angerLabels = map[string]bool{"anger": true, "annoyance": true, "disapproval": true}

const (
	boostAmount = 0.3
	boostCap    = 0.95
)

// Boost raises the score of grief- and anger-family labels when the input
// contains a matching trigger keyword. The boosted score is capped at 0.95.
func Boost(label string, score float64, text string) float64 {
	normalized := strings.ToLower(text)

	if griefLabels[label] && containsAny(normalized, griefKeywords) {
		score = capped(score + boostAmount)
	}
	if angerLabels[label] && containsAny(normalized, angerKeywords) {
		score = capped(score + boostAmount)
	}
	return score
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func capped(score float64) float64 {
	if score > boostCap {
		return boostCap
	}
	return score
}
