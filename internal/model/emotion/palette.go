package emotion

// Glyph is the emoji and hex color a detected label renders with.
type Glyph struct {
	Emoji string
	Color string
}

var neutralGlyph = Glyph{Emoji: "😐", Color: "#F3F4F6"}

// palette covers the 28 GoEmotions categories.
var palette = map[string]Glyph{
	// positive
	"joy":        {Emoji: "😊", Color: "#FEF3C7"},
	"admiration": {Emoji: "🤩", Color: "#FEF3C7"},
	"approval":   {Emoji: "👍", Color: "#D1FAE5"},
	"gratitude":  {Emoji: "🙏", Color: "#FEF3C7"},
	"love":       {Emoji: "❤️", Color: "#FECACA"},
	"optimism":   {Emoji: "😊", Color: "#D1FAE5"},
	"caring":     {Emoji: "🤗", Color: "#D1FAE5"},
	"excitement": {Emoji: "🎉", Color: "#FEF3C7"},
	"amusement":  {Emoji: "😄", Color: "#FEF3C7"},
	"pride":      {Emoji: "😌", Color: "#FEF3C7"},
	"relief":     {Emoji: "😌", Color: "#D1FAE5"},

	// ambiguous
	"desire":      {Emoji: "🤔", Color: "#E0E7FF"},
	"realization": {Emoji: "💡", Color: "#FEF3C7"},
	"curiosity":   {Emoji: "🤔", Color: "#E0E7FF"},
	"neutral":     neutralGlyph,

	// sadness family
	"sadness":        {Emoji: "😢", Color: "#DBEAFE"},
	"disappointment": {Emoji: "😞", Color: "#DBEAFE"},
	"grief":          {Emoji: "😭", Color: "#DBEAFE"},
	"remorse":        {Emoji: "😔", Color: "#DBEAFE"},
	"embarrassment":  {Emoji: "😳", Color: "#FEE2E2"},

	// anger family
	"anger":       {Emoji: "😠", Color: "#FEE2E2"},
	"annoyance":   {Emoji: "😒", Color: "#FEE2E2"},
	"disapproval": {Emoji: "👎", Color: "#FEE2E2"},
	"disgust":     {Emoji: "🤢", Color: "#FEE2E2"},

	// fear/anxiety
	"fear":        {Emoji: "😰", Color: "#EDE9FE"},
	"nervousness": {Emoji: "😰", Color: "#E0E7FF"},

	// confusion/surprise
	"confusion": {Emoji: "😕", Color: "#F3F4F6"},
	"surprise":  {Emoji: "😲", Color: "#E0E7FF"},
}

// Lookup resolves a label to its glyph; unknown labels fall back to the
// neutral glyph rather than erroring.
func Lookup(label string) Glyph {
	if g, ok := palette[label]; ok {
		return g
	}
	return neutralGlyph
}

// Known reports whether label is one of the palette categories.
func Known(label string) bool {
	_, ok := palette[label]
	return ok
}
