package reflection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	chatmodel "github.com/saarthi-app/backend/internal/model/chat"
	emotionmodel "github.com/saarthi-app/backend/internal/model/emotion"
	versemodel "github.com/saarthi-app/backend/internal/model/verse"
)

// Interaction modes.
const (
	ModeSocratic = "socratic"
	ModeWisdom   = "wisdom"
	ModeStory    = "story"
)

var (
	// ErrInvalidMode marks a caller contract violation, not a degradable failure.
	ErrInvalidMode = errors.New("invalid interaction mode")
	// ErrNoVerses marks a caller contract violation: verse-based generation
	// requires at least one candidate verse.
	ErrNoVerses = errors.New("at least one verse is required")
	// ErrBackendUnavailable is returned when no chat model is configured.
	ErrBackendUnavailable = errors.New("reflection backend unavailable")
)

// ValidMode reports whether mode is one of the three recognized modes.
func ValidMode(mode string) bool {
	switch mode {
	case ModeSocratic, ModeWisdom, ModeStory:
		return true
	}
	return false
}

// GenerateInput carries everything a verse-based reflection needs.
type GenerateInput struct {
	UserInput   string
	Emotion     emotionmodel.Emotion
	Verses      []versemodel.Verse
	Mode        string
	History     []chatmodel.Turn
	UserContext []string
}

// Service produces the final natural-language reply. Verse-based modes run
// one compiled chain per mode; casual chat runs its own chain keyed only on
// input and history. Generation errors propagate: the degradation policy
// lives with the orchestrator, not here.
type Service struct {
	chains      map[string]compose.Runnable[map[string]any, *schema.Message]
	casualChain compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the generation chains. chatModel may be nil; Generate
// and GenerateCasual then fail with ErrBackendUnavailable and the caller
// falls back to the deterministic templates.
func NewService(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	svc := &Service{}
	if chatModel == nil {
		return svc, nil
	}

	svc.chains = make(map[string]compose.Runnable[map[string]any, *schema.Message], 3)
	for mode, system := range modePrompts {
		promptTemplate := prompt.FromMessages(
			schema.FString,
			schema.SystemMessage(system),
			schema.UserMessage(reflectionUserPrompt),
		)

		chain := compose.NewChain[map[string]any, *schema.Message]()
		chain.AppendChatTemplate(promptTemplate)
		chain.AppendChatModel(chatModel)

		runnable, err := chain.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s reflection chain: %w", mode, err)
		}
		svc.chains[mode] = runnable
	}

	casualTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(casualSystemPrompt),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	casualChain := compose.NewChain[map[string]any, *schema.Message]()
	casualChain.AppendChatTemplate(casualTemplate)
	casualChain.AppendChatModel(chatModel)

	casual, err := casualChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile casual chat chain: %w", err)
	}
	svc.casualChain = casual

	return svc, nil
}

// Enabled reports whether the model backend is wired in.
func (s *Service) Enabled() bool {
	return s != nil && s.chains != nil
}

// Generate produces a verse-based reflection. Mode and verses are caller
// contract: an unknown mode or an empty verse list is rejected outright.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (string, error) {
	if !ValidMode(in.Mode) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, in.Mode)
	}
	if len(in.Verses) == 0 {
		return "", ErrNoVerses
	}
	if !s.Enabled() {
		return "", ErrBackendUnavailable
	}

	input := map[string]any{
		"emotion":              in.Emotion.Label,
		"confidence":           fmt.Sprintf("%.1f", in.Emotion.Confidence),
		"user_input":           in.UserInput,
		"verses_options":       formatVerseOptions(in.Verses),
		"conversation_history": formatHistory(in.History),
		"user_context":         formatUserContext(in.UserContext),
	}

	msg, err := s.chains[in.Mode].Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("reflection generation failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", errors.New("empty response from generation backend")
	}

	return CleanMarkdown(msg.Content), nil
}

// GenerateCasual produces a small-talk reply keyed only on the input and
// recent history.
func (s *Service) GenerateCasual(ctx context.Context, userInput string, history []chatmodel.Turn) (string, error) {
	if s.casualChain == nil {
		return "", ErrBackendUnavailable
	}

	msg, err := s.casualChain.Invoke(ctx, map[string]any{
		"history": historyMessages(history),
		"query":   userInput,
	})
	if err != nil {
		return "", fmt.Errorf("casual chat generation failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", errors.New("empty response from casual chat backend")
	}

	return strings.TrimSpace(msg.Content), nil
}

// formatVerseOptions numbers every candidate verse so the backend chooses
// which one to foreground, echoing its text verbatim.
func formatVerseOptions(verses []versemodel.Verse) string {
	options := make([]string, 0, len(verses))
	for i, v := range verses {
		options = append(options, strings.TrimSpace(fmt.Sprintf(
			"Option %d - Chapter %d, Verse %d:\nSanskrit (Devanagari): %s\nTransliteration: %s\nEnglish Translation: %s\nSimilarity Score: %.2f",
			i+1, v.Chapter, v.Verse, v.Shloka, v.Transliteration, v.EnglishMeaning, v.SimilarityScore,
		)))
	}
	return strings.Join(options, "\n\n")
}

// formatHistory renders the last three turns as "Role: content" lines.
func formatHistory(history []chatmodel.Turn) string {
	if len(history) == 0 {
		return "This is the beginning of our conversation."
	}

	start := len(history) - 3
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, 3)
	for _, turn := range history[start:] {
		role := turn.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		lines = append(lines, role+": "+turn.Content)
	}
	return strings.Join(lines, "\n")
}

func formatUserContext(userContext []string) string {
	if len(userContext) == 0 {
		return "This user is new to our conversations."
	}

	lines := make([]string, 0, len(userContext))
	for _, entry := range userContext {
		lines = append(lines, "- "+entry)
	}
	return "Previous conversations with this seeker:\n" + strings.Join(lines, "\n")
}

func historyMessages(history []chatmodel.Turn) []*schema.Message {
	const historyLimit = 10

	if len(history) == 0 {
		return nil
	}

	startIdx := 0
	if len(history) > historyLimit {
		startIdx = len(history) - historyLimit
	}

	messages := make([]*schema.Message, 0, len(history)-startIdx)
	for _, turn := range history[startIdx:] {
		switch turn.Role {
		case chatmodel.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case chatmodel.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return messages
}
