package chat

import (
	"context"
	"log"

	emotionmodel "github.com/saarthi-app/backend/internal/model/emotion"
	versemodel "github.com/saarthi-app/backend/internal/model/verse"
	"github.com/saarthi-app/backend/internal/service/reflection"
)

// Component health states.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ComponentHealth reports one pipeline stage.
type ComponentHealth struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Health is the aggregate pipeline report. Overall is the worst of the
// component states.
type Health struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components"`
}

const healthProbeText = "I am feeling good today"

// enabler is satisfied by stages that can say whether their model backend
// is configured.
type enabler interface {
	Enabled() bool
}

// CheckHealth exercises every stage with a tiny probe. A stage whose
// primary backend fails but whose substitute still answers is degraded,
// not unhealthy.
func (s *Service) CheckHealth(ctx context.Context) Health {
	components := map[string]ComponentHealth{
		"intent_classifier": s.probeIntent(ctx),
		"emotion_detector":  s.probeEmotion(ctx),
		"verse_retriever":   s.probeVerses(ctx),
		"reflection":        s.probeReflection(ctx),
	}

	overall := StatusHealthy
	for _, c := range components {
		switch c.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded:
			if overall == StatusHealthy {
				overall = StatusDegraded
			}
		}
	}

	return Health{Status: overall, Components: components}
}

func (s *Service) probeIntent(ctx context.Context) ComponentHealth {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	if _, err := s.classifier.Classify(stageCtx, healthProbeText); err != nil {
		log.Printf("[health] intent probe failed: %v", err)
		return ComponentHealth{Status: StatusUnhealthy, Detail: err.Error()}
	}
	if e, ok := s.classifier.(enabler); ok && !e.Enabled() {
		return ComponentHealth{Status: StatusDegraded, Detail: "model backend not configured, keyword heuristics only"}
	}
	return ComponentHealth{Status: StatusHealthy}
}

func (s *Service) probeEmotion(ctx context.Context) ComponentHealth {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	if _, err := s.detector.Detect(stageCtx, healthProbeText); err != nil {
		log.Printf("[health] emotion probe failed: %v", err)
		return ComponentHealth{Status: StatusDegraded, Detail: "backend unavailable, neutral fallback in effect"}
	}
	if e, ok := s.detector.(enabler); ok && !e.Enabled() {
		return ComponentHealth{Status: StatusDegraded, Detail: "model backend not configured, keyword analysis only"}
	}
	return ComponentHealth{Status: StatusHealthy}
}

func (s *Service) probeVerses(ctx context.Context) ComponentHealth {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	verses, err := s.retriever.Search(stageCtx, "duty and purpose", "", 1)
	if err != nil {
		log.Printf("[health] verse probe failed: %v", err)
		return ComponentHealth{Status: StatusDegraded, Detail: "search unavailable, default verse in effect"}
	}
	if len(verses) == 0 {
		return ComponentHealth{Status: StatusDegraded, Detail: "search returned nothing, default verse in effect"}
	}
	return ComponentHealth{Status: StatusHealthy}
}

func (s *Service) probeReflection(ctx context.Context) ComponentHealth {
	stageCtx, cancel := s.stageContext(ctx)
	defer cancel()

	in := reflection.GenerateInput{
		UserInput: healthProbeText,
		Emotion:   emotionmodel.Neutral(),
		Verses:    []versemodel.Verse{versemodel.Default()},
		Mode:      reflection.ModeWisdom,
	}
	if _, err := s.generator.Generate(stageCtx, in); err != nil {
		log.Printf("[health] reflection probe failed: %v", err)
		return ComponentHealth{Status: StatusDegraded, Detail: "backend unavailable, template fallback in effect"}
	}
	return ComponentHealth{Status: StatusHealthy}
}
