package mock

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/poiesic/iconfinder/ai"
)

// DefaultDimensions is the vector size produced by the default mock behavior.
const DefaultDimensions = 64

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
// Set the function fields before sharing the embedder between goroutines.
type MockEmbedder struct {
	// EmbedTextFunc is called by EmbedText if set.
	// If nil, uses default deterministic behavior.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc is called by EmbedTexts if set.
	// If nil, uses default deterministic behavior.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	// PrepareFunc is called by Prepare if set. If nil, Prepare succeeds.
	PrepareFunc func(ctx context.Context) error

	// ModelName is returned by Model. Defaults to "mock".
	ModelName string

	callCount     atomic.Int64
	textsCalls    atomic.Int64
	embeddedTexts atomic.Int64
	prepareCalls  atomic.Int64
}

var (
	_ ai.Embedder = (*MockEmbedder)(nil)
	_ ai.Preparer = (*MockEmbedder)(nil)
)

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{ModelName: "mock"}
}

// Model returns ModelName.
func (m *MockEmbedder) Model() string {
	return m.ModelName
}

// Prepare records the call and delegates to PrepareFunc when set.
func (m *MockEmbedder) Prepare(ctx context.Context) error {
	m.prepareCalls.Add(1)
	if m.PrepareFunc != nil {
		return m.PrepareFunc(ctx)
	}
	return nil
}

// EmbedText generates a deterministic embedding based on the words in text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.callCount.Add(1)

	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}

	return generateDeterministicVector(text, DefaultDimensions), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount.Add(1)
	m.textsCalls.Add(1)
	m.embeddedTexts.Add(int64(len(texts)))

	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = generateDeterministicVector(text, DefaultDimensions)
	}
	return embeddings, nil
}

// CallCount returns the number of times any embedding method was called.
func (m *MockEmbedder) CallCount() int {
	return int(m.callCount.Load())
}

// EmbedTextsCalls returns the number of batch embedding calls.
func (m *MockEmbedder) EmbedTextsCalls() int {
	return int(m.textsCalls.Load())
}

// EmbeddedTexts returns the total number of texts passed to EmbedTexts.
func (m *MockEmbedder) EmbeddedTexts() int {
	return int(m.embeddedTexts.Load())
}

// PrepareCalls returns the number of times Prepare was called.
func (m *MockEmbedder) PrepareCalls() int {
	return int(m.prepareCalls.Load())
}

// Reset clears the counters and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount.Store(0)
	m.textsCalls.Store(0)
	m.embeddedTexts.Store(0)
	m.prepareCalls.Store(0)
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
	m.PrepareFunc = nil
}

// generateDeterministicVector hashes each lowercase word of text into one of
// dim buckets and normalizes the result to a unit vector. Texts sharing words
// therefore have positive cosine similarity, which keeps ranking assertions
// in tests meaningful.
func generateDeterministicVector(text string, dim int) []float32 {
	vector := make([]float32, dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		h := fnv.New32a()
		h.Write([]byte(word))
		vector[h.Sum32()%uint32(dim)] += 1
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}
	return vector
}
