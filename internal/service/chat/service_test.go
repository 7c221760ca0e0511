package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	chatmodel "github.com/saarthi-app/backend/internal/model/chat"
	emotionmodel "github.com/saarthi-app/backend/internal/model/emotion"
	intentmodel "github.com/saarthi-app/backend/internal/model/intent"
	versemodel "github.com/saarthi-app/backend/internal/model/verse"
	"github.com/saarthi-app/backend/internal/service/reflection"
)

type fakeClassifier struct {
	result intentmodel.Classification
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (intentmodel.Classification, error) {
	f.calls++
	return f.result, f.err
}

type fakeDetector struct {
	result []emotionmodel.Emotion
	err    error
}

func (f *fakeDetector) Detect(_ context.Context, _ string) ([]emotionmodel.Emotion, error) {
	return f.result, f.err
}

type fakeRetriever struct {
	result []versemodel.Verse
	err    error
	gotQ   string
	gotEmo string
}

func (f *fakeRetriever) Search(_ context.Context, query, emotion string, _ int) ([]versemodel.Verse, error) {
	f.gotQ = query
	f.gotEmo = emotion
	return f.result, f.err
}

type fakeGenerator struct {
	text       string
	casualText string
	err        error
	casualErr  error
	panics     bool
}

func (f *fakeGenerator) Generate(_ context.Context, _ reflection.GenerateInput) (string, error) {
	if f.panics {
		panic("generator exploded")
	}
	return f.text, f.err
}

func (f *fakeGenerator) GenerateCasual(_ context.Context, _ string, _ []chatmodel.Turn) (string, error) {
	if f.panics {
		panic("generator exploded")
	}
	return f.casualText, f.casualErr
}

func mustEmotion(t *testing.T, label string, confidence float64) emotionmodel.Emotion {
	t.Helper()
	e, err := emotionmodel.New(label, confidence)
	if err != nil {
		t.Fatalf("emotion %s: %v", label, err)
	}
	return e
}

func newTestService(c IntentClassifier, d EmotionDetector, r Retriever, g Generator, store Store) *Service {
	return NewService(c, d, r, g, store, Config{VerseTopK: 3})
}

func TestProcessMessageEmotionalFlow(t *testing.T) {
	grief := mustEmotion(t, "grief", 0.9)
	verses := versemodel.Seed()[:3]

	retriever := &fakeRetriever{result: verses}
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.EmotionalQuery, Confidence: 0.82}},
		&fakeDetector{result: []emotionmodel.Emotion{grief}},
		retriever,
		&fakeGenerator{text: "a gentle reflection"},
		NewMemoryStore(),
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "I lost my father last month and I cannot stop grieving",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.Intent != intentmodel.EmotionalQuery {
		t.Errorf("intent = %s, want emotional_query", result.Intent)
	}
	if result.Emotion == nil || result.Emotion.Label != "grief" {
		t.Errorf("emotion = %+v, want grief", result.Emotion)
	}
	if len(result.Verses) != 3 {
		t.Errorf("got %d verses, want 3", len(result.Verses))
	}
	if result.FallbackUsed {
		t.Error("fallback_used should be false when every stage succeeds")
	}
	if result.Reflection != "a gentle reflection" {
		t.Errorf("reflection = %q", result.Reflection)
	}
	if retriever.gotEmo != "grief" {
		t.Errorf("search emotion = %q, want grief", retriever.gotEmo)
	}
	if result.SessionID == "" {
		t.Error("expected a session id")
	}
}

func TestProcessMessageCasualSkipsEmotionAndVerses(t *testing.T) {
	retriever := &fakeRetriever{result: versemodel.Seed()[:1]}
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.95}},
		&fakeDetector{err: errors.New("should not be called")},
		retriever,
		&fakeGenerator{casualText: "Namaste! How can I help?"},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "Hello",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.Emotion != nil {
		t.Errorf("casual chat should carry no emotion, got %+v", result.Emotion)
	}
	if len(result.Verses) != 0 {
		t.Errorf("casual chat should carry no verses, got %d", len(result.Verses))
	}
	if retriever.gotQ != "" {
		t.Error("retriever should not be consulted for casual chat")
	}
	if result.FallbackUsed {
		t.Error("fallback_used should be false")
	}
}

func TestProcessMessageSpiritualHasVersesNoEmotion(t *testing.T) {
	retriever := &fakeRetriever{result: versemodel.Seed()[:2]}
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.SpiritualGuidance, Confidence: 0.88}},
		&fakeDetector{err: errors.New("should not be called")},
		retriever,
		&fakeGenerator{text: "on dharma"},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "What does the Gita teach about dharma?",
		InteractionMode: reflection.ModeSocratic,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.Emotion != nil {
		t.Error("spiritual guidance should not run emotion detection")
	}
	if len(result.Verses) != 2 {
		t.Errorf("got %d verses, want 2", len(result.Verses))
	}
	if retriever.gotEmo != "" {
		t.Errorf("spiritual search should not be emotion-steered, got %q", retriever.gotEmo)
	}
}

func TestProcessMessageIntentFailureSelfHeals(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{err: errors.New("backend down")},
		&fakeDetector{},
		&fakeRetriever{},
		&fakeGenerator{casualText: "hi"},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "anything at all",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.Intent != intentmodel.CasualChat {
		t.Errorf("intent = %s, want casual_chat", result.Intent)
	}
	if result.IntentConfidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", result.IntentConfidence)
	}
	if result.FallbackUsed {
		t.Error("intent self-healing must not set fallback_used")
	}
}

func TestProcessMessageEmotionFailureUsesNeutral(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.EmotionalQuery, Confidence: 0.8}},
		&fakeDetector{err: errors.New("backend down")},
		&fakeRetriever{result: versemodel.Seed()[:1]},
		&fakeGenerator{text: "reflection"},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "I feel so lost",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if result.Emotion == nil || result.Emotion.Label != "neutral" {
		t.Errorf("emotion = %+v, want neutral", result.Emotion)
	}
	if result.Emotion != nil && result.Emotion.Confidence != 0.5 {
		t.Errorf("neutral confidence = %v, want 0.5", result.Emotion.Confidence)
	}
	if !result.FallbackUsed {
		t.Error("emotion fallback must set fallback_used")
	}
}

func TestProcessMessageVerseFailureUsesDefault(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.SpiritualGuidance, Confidence: 0.9}},
		&fakeDetector{},
		&fakeRetriever{err: errors.New("index unavailable")},
		&fakeGenerator{text: "reflection"},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "Guide me on detachment",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	want := versemodel.Default()
	if len(result.Verses) != 1 || result.Verses[0].Chapter != want.Chapter || result.Verses[0].Verse != want.Verse {
		t.Errorf("verses = %+v, want the chapter %d verse %d default", result.Verses, want.Chapter, want.Verse)
	}
	if result.Verses[0].SimilarityScore != 0.5 {
		t.Errorf("default verse similarity = %v, want 0.5", result.Verses[0].SimilarityScore)
	}
	if !result.FallbackUsed {
		t.Error("verse fallback must set fallback_used")
	}
}

func TestProcessMessageEmptyVerseResultUsesDefault(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.SpiritualGuidance, Confidence: 0.9}},
		&fakeDetector{},
		&fakeRetriever{result: []versemodel.Verse{}},
		&fakeGenerator{text: "reflection"},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "Guide me",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}
	if len(result.Verses) != 1 || !result.FallbackUsed {
		t.Errorf("empty search must substitute the default verse and flag fallback, got %+v fallback=%v", result.Verses, result.FallbackUsed)
	}
}

func TestProcessMessageGeneratorFailureUsesTemplate(t *testing.T) {
	verses := versemodel.Seed()[:1]
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.SpiritualGuidance, Confidence: 0.9}},
		&fakeDetector{},
		&fakeRetriever{result: verses},
		&fakeGenerator{err: errors.New("model timeout")},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "Guide me on duty",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	if !result.FallbackUsed {
		t.Error("generator fallback must set fallback_used")
	}
	if !strings.Contains(result.Reflection, verses[0].EnglishMeaning) {
		t.Errorf("template fallback should embed the first verse meaning, got %q", result.Reflection)
	}
}

func TestProcessMessageAllBackendsDown(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{err: errors.New("down")},
		&fakeDetector{err: errors.New("down")},
		&fakeRetriever{err: errors.New("down")},
		&fakeGenerator{err: errors.New("down"), casualErr: errors.New("down")},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "I am struggling today",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage should degrade, not fail: %v", err)
	}

	if result.Reflection == "" {
		t.Error("reflection must never be empty")
	}
	if result.SessionID == "" {
		t.Error("session id must be present")
	}
	if result.Intent != intentmodel.CasualChat {
		t.Errorf("intent = %s, want casual_chat after self-healing", result.Intent)
	}
}

func TestProcessMessagePanicYieldsSafeResponse(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.SpiritualGuidance, Confidence: 0.9}},
		&fakeDetector{},
		&fakeRetriever{result: versemodel.Seed()[:1]},
		&fakeGenerator{panics: true},
		nil,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "Guide me",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("panic must be converted to the safe response: %v", err)
	}

	if !result.FallbackUsed {
		t.Error("safe response must flag fallback_used")
	}
	if result.Emotion == nil || result.Emotion.Label != "neutral" {
		t.Errorf("safe response emotion = %+v, want neutral", result.Emotion)
	}
	want := versemodel.Default()
	if len(result.Verses) != 1 || result.Verses[0].ID != want.ID {
		t.Errorf("safe response verses = %+v, want the default verse", result.Verses)
	}
	if result.Reflection == "" {
		t.Error("safe response reflection must not be empty")
	}
}

func TestProcessMessageValidation(t *testing.T) {
	svc := newTestService(&fakeClassifier{}, &fakeDetector{}, &fakeRetriever{}, &fakeGenerator{casualText: "hi"}, nil)

	cases := []struct {
		name    string
		input   string
		mode    string
		wantErr error
	}{
		{"empty input", "", reflection.ModeWisdom, ErrEmptyInput},
		{"whitespace input", "   \n\t  ", reflection.ModeWisdom, ErrEmptyInput},
		{"too long", strings.Repeat("a", MaxInputLength+1), reflection.ModeWisdom, ErrInputTooLong},
		{"bad mode", "hello", "debate", reflection.ErrInvalidMode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ProcessMessage(context.Background(), Request{
				UserInput:       tc.input,
				InteractionMode: tc.mode,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestProcessMessageMaxLengthBoundary(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.6}},
		&fakeDetector{},
		&fakeRetriever{},
		&fakeGenerator{casualText: "ok"},
		nil,
	)

	input := strings.Repeat("a", MaxInputLength)
	if _, err := svc.ProcessMessage(context.Background(), Request{UserInput: input, InteractionMode: reflection.ModeWisdom}); err != nil {
		t.Errorf("input of exactly %d runes should be accepted: %v", MaxInputLength, err)
	}
}

func TestProcessMessageEndedSessionRejected(t *testing.T) {
	store := NewMemoryStore()
	session, err := store.CreateSession(context.Background(), "user-1", reflection.ModeWisdom)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := store.EndSession(context.Background(), session.ID, "done"); err != nil {
		t.Fatalf("EndSession: %v", err)
	}

	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.95}},
		&fakeDetector{},
		&fakeRetriever{},
		&fakeGenerator{casualText: "hi"},
		store,
	)

	_, err = svc.ProcessMessage(context.Background(), Request{
		UserInput:       "hello again",
		SessionID:       session.ID,
		InteractionMode: reflection.ModeWisdom,
	})
	if !errors.Is(err, ErrSessionEnded) {
		t.Errorf("err = %v, want ErrSessionEnded", err)
	}
}

func TestProcessMessagePersistsTurns(t *testing.T) {
	store := NewMemoryStore()
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.95}},
		&fakeDetector{},
		&fakeRetriever{},
		&fakeGenerator{casualText: "Namaste!"},
		store,
	)

	result, err := svc.ProcessMessage(context.Background(), Request{
		UserInput:       "hi there",
		UserID:          "user-1",
		InteractionMode: reflection.ModeWisdom,
	})
	if err != nil {
		t.Fatalf("ProcessMessage: %v", err)
	}

	turns, err := store.History(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want user and assistant", len(turns))
	}
	if turns[0].Role != chatmodel.RoleUser || turns[0].Content != "hi there" {
		t.Errorf("first turn = %+v", turns[0])
	}
	if turns[1].Role != chatmodel.RoleAssistant || turns[1].Content != "Namaste!" {
		t.Errorf("second turn = %+v", turns[1])
	}
}

func TestClassificationIdempotent(t *testing.T) {
	classifier := &fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.SpiritualGuidance, Confidence: 0.84}}
	svc := newTestService(classifier, &fakeDetector{}, &fakeRetriever{result: versemodel.Seed()[:1]}, &fakeGenerator{text: "r"}, nil)

	req := Request{UserInput: "What is karma yoga?", InteractionMode: reflection.ModeWisdom}
	first, err := svc.ProcessMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.ProcessMessage(context.Background(), req)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	if first.Intent != second.Intent || first.IntentConfidence != second.IntentConfidence {
		t.Errorf("classification changed between identical turns: %+v vs %+v", first, second)
	}
}

func TestCheckHealthDegradedRetriever(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.6}},
		&fakeDetector{result: []emotionmodel.Emotion{emotionmodel.Neutral()}},
		&fakeRetriever{err: errors.New("down")},
		&fakeGenerator{text: "ok"},
		nil,
	)

	report := svc.CheckHealth(context.Background())
	if report.Status != StatusDegraded {
		t.Errorf("overall = %s, want degraded", report.Status)
	}
	if report.Components["verse_retriever"].Status != StatusDegraded {
		t.Errorf("verse_retriever = %+v", report.Components["verse_retriever"])
	}
}

func TestCheckHealthUnhealthyIntent(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{err: errors.New("down")},
		&fakeDetector{result: []emotionmodel.Emotion{emotionmodel.Neutral()}},
		&fakeRetriever{result: versemodel.Seed()[:1]},
		&fakeGenerator{text: "ok"},
		nil,
	)

	report := svc.CheckHealth(context.Background())
	if report.Status != StatusUnhealthy {
		t.Errorf("overall = %s, want unhealthy", report.Status)
	}
}

func TestCheckHealthAllUp(t *testing.T) {
	svc := newTestService(
		&fakeClassifier{result: intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.6}},
		&fakeDetector{result: []emotionmodel.Emotion{emotionmodel.Neutral()}},
		&fakeRetriever{result: versemodel.Seed()[:1]},
		&fakeGenerator{text: "ok"},
		nil,
	)

	report := svc.CheckHealth(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("overall = %s, want healthy: %+v", report.Status, report.Components)
	}
}
