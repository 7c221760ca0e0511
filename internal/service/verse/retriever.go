package verse

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/embedding"

	versemodel "github.com/saarthi-app/backend/internal/model/verse"
)

// Retriever is the contract the orchestrator consumes. An empty result is a
// valid retriever answer; treating it as a failure is the caller's policy.
type Retriever interface {
	Search(ctx context.Context, query, emotion string, topK int) ([]versemodel.Verse, error)
}

// ErrEmptyCorpus is returned when no verses are loaded.
var ErrEmptyCorpus = errors.New("verse corpus is empty")

// Service retrieves verses by semantic similarity. With an embedder the
// corpus is embedded once, lazily, on first search; without one a lexical
// token-overlap ranking serves as the lower-ranked provider.
type Service struct {
	corpus   []versemodel.Verse
	embedder embedding.Embedder

	indexOnce sync.Once
	index     [][]float64
	indexErr  error
}

// NewService builds a retriever over the given corpus. embedder may be nil.
func NewService(corpus []versemodel.Verse, embedder embedding.Embedder) *Service {
	return &Service{
		corpus:   append([]versemodel.Verse(nil), corpus...),
		embedder: embedder,
	}
}

// Search returns up to topK verses sorted by descending similarity. When an
// emotion label is supplied the query is expanded with it so retrieval can
// favor verses matching the seeker's state.
func (s *Service) Search(ctx context.Context, query, emotion string, topK int) ([]versemodel.Verse, error) {
	if len(s.corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	if topK <= 0 {
		topK = 3
	}

	expanded := strings.TrimSpace(query)
	if emotion != "" {
		expanded = expanded + " feeling " + emotion
	}

	if s.embedder == nil {
		return s.searchLexical(expanded, topK), nil
	}

	results, err := s.searchSemantic(ctx, expanded, topK)
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) searchSemantic(ctx context.Context, query string, topK int) ([]versemodel.Verse, error) {
	// The corpus index is embedded at most once per process, even under
	// concurrent first searches. An initialization failure is sticky.
	s.indexOnce.Do(func() {
		texts := make([]string, len(s.corpus))
		for i, v := range s.corpus {
			texts[i] = v.EnglishMeaning
		}
		vectors, err := s.embedder.EmbedStrings(ctx, texts)
		if err != nil {
			s.indexErr = fmt.Errorf("failed to embed verse corpus: %w", err)
			return
		}
		if len(vectors) != len(s.corpus) {
			s.indexErr = fmt.Errorf("corpus embedding count mismatch: got %d want %d", len(vectors), len(s.corpus))
			return
		}
		s.index = vectors
		log.Printf("[verse] embedded corpus of %d verses", len(s.corpus))
	})
	if s.indexErr != nil {
		return nil, s.indexErr
	}

	queryVectors, err := s.embedder.EmbedStrings(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(queryVectors) != 1 {
		return nil, fmt.Errorf("unexpected query embedding count %d", len(queryVectors))
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(s.corpus))
	for i := range s.corpus {
		ranked = append(ranked, scored{idx: i, score: cosineSimilarity(queryVectors[0], s.index[i])})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if topK > len(ranked) {
		topK = len(ranked)
	}
	results := make([]versemodel.Verse, 0, topK)
	for _, entry := range ranked[:topK] {
		// Cosine similarity of non-negative embeddings lands in [0,1];
		// clamp defensively before validation.
		score := entry.score
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		v, err := s.corpus[entry.idx].WithScore(score)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// searchLexical ranks by token overlap between the query and the verse's
// translation. Verses with zero overlap are omitted, so the result can be
// empty.
func (s *Service) searchLexical(query string, topK int) []versemodel.Verse {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score float64
	}
	var ranked []scored
	for i, v := range s.corpus {
		verseTokens := tokenize(v.EnglishMeaning + " " + v.Transliteration)
		overlap := 0
		for token := range queryTokens {
			if verseTokens[token] {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		ranked = append(ranked, scored{idx: i, score: float64(overlap) / float64(len(queryTokens))})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if topK > len(ranked) {
		topK = len(ranked)
	}
	results := make([]versemodel.Verse, 0, topK)
	for _, entry := range ranked[:topK] {
		v, err := s.corpus[entry.idx].WithScore(entry.score)
		if err != nil {
			continue
		}
		results = append(results, v)
	}
	return results
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "be": true, "for": true,
	"i": true, "in": true, "is": true, "it": true, "my": true, "of": true,
	"so": true, "the": true, "to": true, "you": true, "your": true,
}

func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, ".,;:!?\"'()")
		if len(token) < 2 || stopwords[token] {
			continue
		}
		tokens[token] = true
	}
	return tokens
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
