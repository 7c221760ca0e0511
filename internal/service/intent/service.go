package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/saarthi-app/backend/internal/analysis/intent"
	intentmodel "github.com/saarthi-app/backend/internal/model/intent"
)

// Config controls the intent classifier.
type Config struct {
	ConfidenceThreshold float64
}

// Service classifies user turns as casual chat, emotional query, or
// spiritual guidance. The model backend is optional: without it the
// keyword heuristics carry the whole load.
type Service struct {
	classifier compose.Runnable[map[string]any, *schema.Message]
	threshold  float64
}

// NewService compiles the zero-shot classification chain. chatModel may be
// nil, in which case classification is heuristic-only.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	threshold := cfg.ConfidenceThreshold
	if threshold <= 0 {
		threshold = 0.6
	}

	svc := &Service{threshold: threshold}
	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(intentSystemPrompt),
		schema.UserMessage(intentUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile intent classifier chain: %w", err)
	}

	svc.classifier = runnable
	return svc, nil
}

// Enabled reports whether the model backend is wired in.
func (s *Service) Enabled() bool {
	return s != nil && s.classifier != nil
}

// Classify labels the input. Priority order: rule fast-path, then the
// zero-shot backend, then keyword heuristics. A backend failure falls back
// to the heuristics exactly once; the backend is never retried within a
// call. Classification is stateless, so equal inputs yield equal results.
func (s *Service) Classify(ctx context.Context, text string) (intentmodel.Classification, error) {
	if analysis.CasualByRules(text) {
		return intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: 0.95}, nil
	}

	if !s.Enabled() {
		return analysis.ScoreKeywords(text), nil
	}

	result, err := s.classifyByModel(ctx, text)
	if err != nil {
		log.Printf("[intent] model classification failed, using heuristics: %v", err)
		return analysis.ScoreKeywords(text), nil
	}

	// Below-threshold predictions degrade to the safest mode while keeping
	// the original confidence visible to the caller.
	if result.Confidence < s.threshold {
		return intentmodel.Classification{Intent: intentmodel.CasualChat, Confidence: result.Confidence}, nil
	}

	return result, nil
}

func (s *Service) classifyByModel(ctx context.Context, text string) (intentmodel.Classification, error) {
	msg, err := s.classifier.Invoke(ctx, map[string]any{"user_input": text})
	if err != nil {
		return intentmodel.Classification{}, err
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return intentmodel.Classification{}, fmt.Errorf("empty classifier output")
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		return intentmodel.Classification{}, err
	}

	label, ok := parseIntentLabel(payload.Intent)
	if !ok {
		return intentmodel.Classification{}, fmt.Errorf("unknown intent label %q", payload.Intent)
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return intentmodel.Classification{Intent: label, Confidence: confidence}, nil
}

type classifierPayload struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func parseClassifierOutput(content string) (*classifierPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func parseIntentLabel(raw string) (intentmodel.Intent, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "casual_chat":
		return intentmodel.CasualChat, true
	case "emotional_query":
		return intentmodel.EmotionalQuery, true
	case "spiritual_guidance":
		return intentmodel.SpiritualGuidance, true
	default:
		return "", false
	}
}

const intentSystemPrompt = "You are a routing classifier for a scripture-companion chat service. Classify the user's message into exactly one intent:\n" +
	"- casual_chat: greeting, small talk, general conversation, factual question, introduction\n" +
	"- emotional_query: expressing sadness, anxiety, stress, confusion, guilt, emotional struggle, seeking comfort\n" +
	"- spiritual_guidance: philosophical question, seeking wisdom, asking about dharma, karma, or Bhagavad Gita teachings\n" +
	"Return only a JSON object with fields: intent (one of the three labels above) and confidence (a number between 0 and 1). No extra text."

const intentUserPrompt = "User message:\n{user_input}\n\nReturn the JSON."
