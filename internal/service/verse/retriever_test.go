package verse

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/embedding"

	versemodel "github.com/saarthi-app/backend/internal/model/verse"
)

// fakeEmbedder maps exact strings to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) EmbedStrings(_ context.Context, texts []string, _ ...embedding.Option) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		v, ok := f.vectors[text]
		if !ok {
			v = []float64{0, 0, 1}
		}
		out[i] = v
	}
	return out, nil
}

func testCorpus() []versemodel.Verse {
	return []versemodel.Verse{
		{ID: "bg-1", Chapter: 2, Verse: 47, EnglishMeaning: "You have the right to perform your duty, but not to the fruits of action."},
		{ID: "bg-2", Chapter: 2, Verse: 14, EnglishMeaning: "Contact with sensory objects brings cold and heat, pleasure and pain; they come and go and are impermanent."},
		{ID: "bg-3", Chapter: 6, Verse: 5, EnglishMeaning: "Elevate yourself through the power of your own mind, and do not degrade yourself."},
	}
}

func TestSearchLexicalRanksOverlap(t *testing.T) {
	svc := NewService(testCorpus(), nil)

	results, err := svc.Search(context.Background(), "how do I perform my duty without attachment to fruits", "", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one match")
	}
	if results[0].ID != "bg-1" {
		t.Errorf("top result = %s, want bg-1", results[0].ID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].SimilarityScore > results[i-1].SimilarityScore {
			t.Errorf("results not sorted by descending similarity: %v", results)
		}
	}
}

func TestSearchLexicalNoOverlapIsEmpty(t *testing.T) {
	svc := NewService(testCorpus(), nil)

	results, err := svc.Search(context.Background(), "zyzzyva quokka", "", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %v", results)
	}
}

func TestSearchEmptyCorpus(t *testing.T) {
	svc := NewService(nil, nil)

	if _, err := svc.Search(context.Background(), "duty", "", 3); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("err = %v, want ErrEmptyCorpus", err)
	}
}

func TestSearchSemanticRanksByCosine(t *testing.T) {
	corpus := testCorpus()
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		corpus[0].EnglishMeaning:    {1, 0, 0},
		corpus[1].EnglishMeaning:    {0, 1, 0},
		corpus[2].EnglishMeaning:    {0.5, 0.5, 0},
		"impermanence of suffering": {0, 1, 0},
	}}
	svc := NewService(corpus, embedder)

	results, err := svc.Search(context.Background(), "impermanence of suffering", "", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID != "bg-2" {
		t.Errorf("top result = %s, want bg-2", results[0].ID)
	}
	if results[0].SimilarityScore < results[1].SimilarityScore {
		t.Error("results not sorted by descending similarity")
	}
	if results[0].SimilarityScore < 0 || results[0].SimilarityScore > 1 {
		t.Errorf("similarity %v outside [0,1]", results[0].SimilarityScore)
	}
}

func TestSearchSemanticEmotionExpandsQuery(t *testing.T) {
	corpus := testCorpus()
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		corpus[0].EnglishMeaning:     {1, 0, 0},
		corpus[1].EnglishMeaning:     {0, 1, 0},
		corpus[2].EnglishMeaning:     {0, 0, 1},
		"I am hurting feeling grief": {0, 1, 0},
	}}
	svc := NewService(corpus, embedder)

	results, err := svc.Search(context.Background(), "I am hurting", "grief", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "bg-2" {
		t.Errorf("results = %v, want the verse matched by the expanded query", results)
	}
}

func TestSearchSemanticCorpusEmbeddedOnce(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{}}
	svc := NewService(testCorpus(), embedder)

	for i := 0; i < 3; i++ {
		if _, err := svc.Search(context.Background(), "duty", "", 1); err != nil {
			t.Fatalf("Search %d: %v", i, err)
		}
	}

	// One corpus embedding call plus one query embedding call per search.
	if embedder.calls != 4 {
		t.Errorf("embedder calls = %d, want 4", embedder.calls)
	}
}

func TestSearchSemanticIndexFailureIsSticky(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("embedding backend down")}
	svc := NewService(testCorpus(), embedder)

	if _, err := svc.Search(context.Background(), "duty", "", 1); err == nil {
		t.Fatal("expected an error from the failed index build")
	}

	embedder.err = nil
	if _, err := svc.Search(context.Background(), "duty", "", 1); err == nil {
		t.Fatal("index failure must stay sticky for the process lifetime")
	}
}
