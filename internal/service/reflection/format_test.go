package reflection

import (
	"strings"
	"testing"
)

func TestCleanMarkdownEmphasisRuns(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"****bold****", "**bold**"},
		{"***bold***", "**bold**"},
		{"**---**", "---"},
		{"  padded  ", "padded"},
	}

	for _, tc := range cases {
		if got := CleanMarkdown(tc.in); got != tc.want {
			t.Errorf("CleanMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanMarkdownHeadingSpacing(t *testing.T) {
	got := CleanMarkdown("intro\n## Heading\nbody")
	if !strings.Contains(got, "intro\n\n## Heading\n\nbody") {
		t.Errorf("headings should be surrounded by blank lines, got %q", got)
	}
}

func TestCleanMarkdownCollapsesBlankRuns(t *testing.T) {
	got := CleanMarkdown("a\n\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateFallbackEmbedsFirstVerse(t *testing.T) {
	in := testInput()
	got := GenerateFallback(in)

	v := in.Verses[0]
	for _, want := range []string{v.Shloka, v.Transliteration, v.EnglishMeaning, in.Emotion.Label} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback missing %q", want)
		}
	}
}

func TestGenerateFallbackWithoutVerses(t *testing.T) {
	in := testInput()
	in.Verses = nil
	got := GenerateFallback(in)
	if got == "" {
		t.Fatal("verse-free fallback must not be empty")
	}
	if strings.Contains(got, "Verse ") && strings.Contains(got, "Sanskrit") {
		t.Errorf("verse-free fallback should not pretend to carry a verse: %q", got)
	}
}

func TestCasualFallbackThanks(t *testing.T) {
	got := CasualFallback("thanks for the help")
	if !strings.Contains(strings.ToLower(got), "welcome") {
		t.Errorf("thanks should get a you're-welcome reply, got %q", got)
	}
	if generic := CasualFallback("hello there"); generic == got {
		t.Error("generic casual fallback should differ from the thanks reply")
	}
}

func TestLastResortWithVerse(t *testing.T) {
	in := testInput()
	got := LastResortWithVerse(in)
	if !strings.Contains(got, in.Verses[0].EnglishMeaning) {
		t.Errorf("last resort should embed the verse meaning, got %q", got)
	}

	in.Verses = nil
	if LastResortWithVerse(in) == "" {
		t.Error("verse-free last resort must not be empty")
	}
}
