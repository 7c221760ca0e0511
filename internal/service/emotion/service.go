package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/saarthi-app/backend/internal/analysis/emotion"
	emotionmodel "github.com/saarthi-app/backend/internal/model/emotion"
)

// Config controls the emotion detector.
type Config struct {
	Threshold float64
}

// Service detects emotions in user text. Providers are ranked: the model
// chain when configured, otherwise the lexical analyzer. A model failure is
// reported to the caller, which owns the neutral substitution policy.
type Service struct {
	classifier compose.Runnable[map[string]any, *schema.Message]
	threshold  float64
}

// NewService compiles the multi-label classification chain. chatModel may
// be nil; detection then runs on the lexical analyzer alone.
func NewService(ctx context.Context, chatModel model.ChatModel, cfg Config) (*Service, error) {
	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 0.15
	}

	svc := &Service{threshold: threshold}
	if chatModel == nil {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(emotionSystemPrompt),
		schema.UserMessage(emotionUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	svc.classifier = runnable
	return svc, nil
}

// Enabled reports whether the model backend is wired in.
func (s *Service) Enabled() bool {
	return s != nil && s.classifier != nil
}

// Detect returns the detected emotions ordered by descending confidence.
// Label scores get the grief/anger keyword boost before the threshold
// filter; labels surviving the filter are mapped to their display glyphs.
// An empty survivor set yields the single synthetic neutral entry.
func (s *Service) Detect(ctx context.Context, text string) ([]emotionmodel.Emotion, error) {
	var scores []analysis.Score

	if s.Enabled() {
		modelScores, err := s.detectByModel(ctx, text)
		if err != nil {
			return nil, err
		}
		scores = modelScores
	} else {
		scores = analysis.Analyze(text)
	}

	emotions := make([]emotionmodel.Emotion, 0, len(scores))
	for _, sc := range scores {
		confidence := analysis.Boost(sc.Label, sc.Confidence, text)
		if confidence < s.threshold {
			continue
		}
		emo, err := emotionmodel.New(sc.Label, confidence)
		if err != nil {
			return nil, fmt.Errorf("malformed emotion score: %w", err)
		}
		emotions = append(emotions, emo)
	}

	sort.SliceStable(emotions, func(i, j int) bool {
		return emotions[i].Confidence > emotions[j].Confidence
	})

	if len(emotions) == 0 {
		emotions = []emotionmodel.Emotion{emotionmodel.Neutral()}
	}

	return emotions, nil
}

// Dominant returns the highest-confidence entry of an already-sorted
// detection result, or neutral for an empty list.
func Dominant(emotions []emotionmodel.Emotion) emotionmodel.Emotion {
	if len(emotions) == 0 {
		return emotionmodel.Neutral()
	}
	return emotions[0]
}

func (s *Service) detectByModel(ctx context.Context, text string) ([]analysis.Score, error) {
	msg, err := s.classifier.Invoke(ctx, map[string]any{"user_input": text})
	if err != nil {
		return nil, fmt.Errorf("emotion classifier invoke failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return nil, fmt.Errorf("empty emotion classifier output")
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		return nil, fmt.Errorf("emotion classifier output parse failed: %w", err)
	}

	scores := make([]analysis.Score, 0, len(payload.Emotions))
	for _, entry := range payload.Emotions {
		label := strings.ToLower(strings.TrimSpace(entry.Label))
		if label == "" {
			continue
		}
		score := entry.Score
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		scores = append(scores, analysis.Score{Label: label, Confidence: score})
	}

	return scores, nil
}

type classifierPayload struct {
	Emotions []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"emotions"`
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

const emotionSystemPrompt = "You are a multi-label emotion classifier. Score the user's message against the 28 GoEmotions categories " +
	"(admiration, amusement, anger, annoyance, approval, caring, confusion, curiosity, desire, disappointment, disapproval, disgust, " +
	"embarrassment, excitement, fear, gratitude, grief, joy, love, nervousness, optimism, pride, realization, relief, remorse, sadness, surprise, neutral).\n" +
	"Return only a JSON object with a single field named emotions: an array of entries, each carrying a label field " +
	"(one of the categories above) and a score field (a number between 0 and 1). " +
	"Include every label whose score is above 0.05. No extra text."

const emotionUserPrompt = "Message:\n{user_input}\n\nReturn the JSON."
