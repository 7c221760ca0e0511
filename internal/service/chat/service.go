package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	chatmodel "github.com/saarthi-app/backend/internal/model/chat"
	emotionmodel "github.com/saarthi-app/backend/internal/model/emotion"
	intentmodel "github.com/saarthi-app/backend/internal/model/intent"
	versemodel "github.com/saarthi-app/backend/internal/model/verse"
	emotionservice "github.com/saarthi-app/backend/internal/service/emotion"
	"github.com/saarthi-app/backend/internal/service/reflection"
)

// MaxInputLength caps user input; longer requests are rejected before any
// pipeline stage runs.
const MaxInputLength = 5000

var (
	// ErrEmptyInput and ErrInputTooLong are caller validation errors.
	ErrEmptyInput   = errors.New("user input is empty")
	ErrInputTooLong = fmt.Errorf("user input exceeds %d characters", MaxInputLength)
	// ErrInternal is surfaced only when even the last-resort response could
	// not be produced.
	ErrInternal = errors.New("internal error")
)

// IntentClassifier labels a user turn.
type IntentClassifier interface {
	Classify(ctx context.Context, text string) (intentmodel.Classification, error)
}

// EmotionDetector produces ranked emotions for a user turn.
type EmotionDetector interface {
	Detect(ctx context.Context, text string) ([]emotionmodel.Emotion, error)
}

// Retriever performs semantic verse search.
type Retriever interface {
	Search(ctx context.Context, query, emotion string, topK int) ([]versemodel.Verse, error)
}

// Generator produces the final reply text.
type Generator interface {
	Generate(ctx context.Context, in reflection.GenerateInput) (string, error)
	GenerateCasual(ctx context.Context, userInput string, history []chatmodel.Turn) (string, error)
}

// Config tunes the orchestration pipeline.
type Config struct {
	VerseTopK    int
	StageTimeout time.Duration
}

// Request is one inbound chat turn.
type Request struct {
	UserInput       string
	SessionID       string
	UserID          string
	InteractionMode string
}

// Service sequences intent classification, emotion detection, verse
// retrieval, and reflection generation, and owns the degradation policy:
// every stage failure is replaced by a deterministic substitute and flagged
// on the result, never surfaced to the caller.
type Service struct {
	classifier IntentClassifier
	detector   EmotionDetector
	retriever  Retriever
	generator  Generator
	store      Store
	cfg        Config
}

// NewService wires the pipeline. store may be nil, in which case every turn
// is processed history-less.
func NewService(classifier IntentClassifier, detector EmotionDetector, retriever Retriever, generator Generator, store Store, cfg Config) *Service {
	if cfg.VerseTopK <= 0 {
		cfg.VerseTopK = 3
	}
	return &Service{
		classifier: classifier,
		detector:   detector,
		retriever:  retriever,
		generator:  generator,
		store:      store,
		cfg:        cfg,
	}
}

// ProcessMessage runs the full pipeline for one turn. Validation errors are
// returned as-is; anything else degrades to a well-formed response.
func (s *Service) ProcessMessage(ctx context.Context, req Request) (chatmodel.Result, error) {
	if err := validateRequest(req); err != nil {
		return chatmodel.Result{}, err
	}

	session, history, storeErr := s.resolveSession(ctx, req)
	if storeErr != nil {
		if errors.Is(storeErr, ErrSessionEnded) {
			return chatmodel.Result{}, storeErr
		}
		// Store trouble is not the seeker's problem: degrade to a fresh,
		// history-less turn.
		log.Printf("[chat] session store unavailable, continuing without history: %v", storeErr)
	}

	result, err := s.runPipeline(ctx, req, session.ID, history)
	if err != nil {
		return chatmodel.Result{}, err
	}

	if storeErr == nil && s.store != nil {
		s.persistTurns(ctx, session.ID, req, result)
	}

	return result, nil
}

// runPipeline executes the staged pipeline under a catch-all: a panic
// anywhere discards partial state and yields the fixed safe response.
func (s *Service) runPipeline(ctx context.Context, req Request, sessionID string, history []chatmodel.Turn) (result chatmodel.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[chat] pipeline panic, returning safe response: %v", r)
			result, err = s.safeResult(req, sessionID)
		}
	}()

	fallbackUsed := false

	// Intent. A classifier error self-heals to the safest mode; this is
	// intent-layer healing, tracked apart from fallbackUsed.
	classification := s.classifyIntent(ctx, req.UserInput)

	// Emotion, only for emotional queries.
	var dominant *emotionmodel.Emotion
	if classification.Intent.NeedsEmotion() {
		emo, degraded := s.resolveEmotion(ctx, req.UserInput)
		dominant = &emo
		if degraded {
			fallbackUsed = true
		}
	}

	// Verses, for emotional and spiritual intents. An empty result is
	// treated as a failure here, by policy.
	verses := []versemodel.Verse{}
	if classification.Intent.NeedsVerses() {
		searchEmotion := ""
		if classification.Intent == intentmodel.EmotionalQuery && dominant != nil {
			searchEmotion = dominant.Label
		}
		found, degraded := s.resolveVerses(ctx, req.UserInput, searchEmotion)
		verses = found
		if degraded {
			fallbackUsed = true
		}
	}

	// Reflection.
	text, degraded := s.resolveReflection(ctx, req, classification.Intent, dominant, verses, history)
	if degraded {
		fallbackUsed = true
	}

	return chatmodel.Result{
		Reflection:       text,
		Emotion:          dominant,
		Verses:           verses,
		SessionID:        sessionID,
		InteractionMode:  req.InteractionMode,
		Intent:           classification.Intent,
		IntentConfidence: classification.Confidence,
		FallbackUsed:     fallbackUsed,
	}, nil
}

func (s *Service) classifyIntent(ctx context.Context, userInput string) intentmodel.Classification {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	classification, err := s.classifier.Classify(stageCtx, userInput)
	if err != nil {
		log.Printf("[chat] intent classification failed, defaulting to casual_chat: %v", err)
		return intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.5}
	}
	return classification
}

func (s *Service) resolveEmotion(ctx context.Context, userInput string) (emotionmodel.Emotion, bool) {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	emotions, err := s.detector.Detect(stageCtx, userInput)
	if err != nil {
		log.Printf("[chat] emotion detection failed, using neutral fallback: %v", err)
		return emotionmodel.Neutral(), true
	}
	return emotionservice.Dominant(emotions), false
}

func (s *Service) resolveVerses(ctx context.Context, userInput, searchEmotion string) ([]versemodel.Verse, bool) {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	verses, err := s.retriever.Search(stageCtx, userInput, searchEmotion, s.cfg.VerseTopK)
	if err != nil {
		log.Printf("[chat] verse search failed, using default verse: %v", err)
		return []versemodel.Verse{versemodel.Default()}, true
	}
	if len(verses) == 0 {
		log.Printf("[chat] verse search returned nothing, using default verse")
		return []versemodel.Verse{versemodel.Default()}, true
	}
	return verses, false
}

func (s *Service) resolveReflection(ctx context.Context, req Request, label intentmodel.Intent, dominant *emotionmodel.Emotion, verses []versemodel.Verse, history []chatmodel.Turn) (string, bool) {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	if label == intentmodel.CasualChat {
		text, err := s.generator.GenerateCasual(stageCtx, req.UserInput, history)
		if err != nil {
			log.Printf("[chat] casual generation failed, using fallback: %v", err)
			return casualFallbackText(req.UserInput), true
		}
		return text, false
	}

	in := reflection.GenerateInput{
		UserInput:   req.UserInput,
		Emotion:     emotionOrNeutral(dominant),
		Verses:      verses,
		Mode:        req.InteractionMode,
		History:     history,
		UserContext: nil,
	}

	text, err := s.generator.Generate(stageCtx, in)
	if err != nil {
		log.Printf("[chat] reflection generation failed, using fallback: %v", err)
		return verseFallbackText(in), true
	}
	return text, false
}

// casualFallbackText renders the deterministic casual reply; if even that
// path blows up, the fixed last-resort string is substituted.
func casualFallbackText(userInput string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = reflection.LastResortCasual
		}
	}()
	return reflection.CasualFallback(userInput)
}

// verseFallbackText renders the deterministic template reflection; if even
// that path blows up, the fixed verse-bearing message is substituted.
func verseFallbackText(in reflection.GenerateInput) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = reflection.LastResortWithVerse(in)
		}
	}()
	return reflection.GenerateFallback(in)
}

// safeResult is the independent catch-all response: neutral emotion, the
// default verse, a fixed reflection, intent forced to casual_chat.
func (s *Service) safeResult(req Request, sessionID string) (result chatmodel.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = chatmodel.Result{}, ErrInternal
		}
	}()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	neutral := emotionmodel.Neutral()
	fallback := versemodel.Default()

	return chatmodel.Result{
		Reflection:       safeReflection(fallback),
		Emotion:          &neutral,
		Verses:           []versemodel.Verse{fallback},
		SessionID:        sessionID,
		InteractionMode:  req.InteractionMode,
		Intent:           intentmodel.CasualChat,
		IntentConfidence: 0.5,
		FallbackUsed:     true,
	}, nil
}

func safeReflection(v versemodel.Verse) string {
	return fmt.Sprintf(`I'm here to provide guidance from the Bhagavad Gita. Here's a fundamental teaching:

**Verse %d.%d:**

Sanskrit: %s

English: %s

This verse reminds us to focus on our actions rather than worrying about outcomes. Whatever you're facing, remember that you have the power to choose your response.`,
		v.Chapter, v.Verse, v.Shloka, v.EnglishMeaning)
}

// resolveSession loads or creates the session and its history. With no
// store configured every turn is a fresh, history-less one.
func (s *Service) resolveSession(ctx context.Context, req Request) (chatmodel.Session, []chatmodel.Turn, error) {
	if s.store == nil {
		return fallbackSession(req), nil, nil
	}

	if req.SessionID != "" {
		session, err := s.store.GetSession(ctx, req.SessionID)
		switch {
		case err == nil:
			if session.Ended() {
				return fallbackSession(req), nil, ErrSessionEnded
			}
			history, err := s.store.History(ctx, session.ID)
			if err != nil {
				log.Printf("[chat] failed to load history for session %s: %v", session.ID, err)
				history = nil
			}
			return session, history, nil
		case errors.Is(err, ErrSessionNotFound):
			// Unknown id: fall through and start fresh.
		default:
			return fallbackSession(req), nil, err
		}
	}

	session, err := s.store.CreateSession(ctx, req.UserID, req.InteractionMode)
	if err != nil {
		return fallbackSession(req), nil, err
	}
	return session, nil, nil
}

func fallbackSession(req Request) chatmodel.Session {
	id := req.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	return chatmodel.Session{ID: id, InteractionMode: req.InteractionMode}
}

// persistTurns appends the user and assistant turns best-effort; storage
// trouble never fails the request.
func (s *Service) persistTurns(ctx context.Context, sessionID string, req Request, result chatmodel.Result) {
	userTurn := chatmodel.Turn{
		SessionID: sessionID,
		Role:      chatmodel.RoleUser,
		Content:   req.UserInput,
		Emotion:   result.Emotion,
	}
	if _, err := s.store.AppendTurn(ctx, userTurn); err != nil {
		log.Printf("[chat] failed to store user turn: %v", err)
		return
	}

	assistantTurn := chatmodel.Turn{
		SessionID: sessionID,
		Role:      chatmodel.RoleAssistant,
		Content:   result.Reflection,
	}
	if len(result.Verses) > 0 {
		assistantTurn.VerseID = result.Verses[0].ID
	}
	if _, err := s.store.AppendTurn(ctx, assistantTurn); err != nil {
		log.Printf("[chat] failed to store assistant turn: %v", err)
	}
}

func (s *Service) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.StageTimeout)
}

func validateRequest(req Request) error {
	if !reflection.ValidMode(req.InteractionMode) {
		return fmt.Errorf("%w: %q", reflection.ErrInvalidMode, req.InteractionMode)
	}
	if strings.TrimSpace(req.UserInput) == "" {
		return ErrEmptyInput
	}
	if length := utf8.RuneCountInString(req.UserInput); length > MaxInputLength {
		return ErrInputTooLong
	}
	return nil
}

func emotionOrNeutral(dominant *emotionmodel.Emotion) emotionmodel.Emotion {
	if dominant == nil {
		return emotionmodel.Neutral()
	}
	return *dominant
}
