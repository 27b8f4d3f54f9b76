package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func TestMockEmbedder_Deterministic(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	v1, err := m.EmbedText(ctx, "home house")
	require.NoError(t, err)
	v2, err := m.EmbedText(ctx, "home house")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, DefaultDimensions)
	assert.InDelta(t, 1.0, dot(v1, v1), 1e-5)
}

func TestMockEmbedder_SharedWordsAreSimilar(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	query, _ := m.EmbedText(ctx, "house")
	vectors, err := m.EmbedTexts(ctx, []string{"home-bold house building", "zzz qqq"})
	require.NoError(t, err)

	assert.Greater(t, dot(query, vectors[0]), dot(query, vectors[1]))
}

func TestMockEmbedder_Counters(t *testing.T) {
	m := NewMockEmbedder()
	ctx := context.Background()

	_, _ = m.EmbedText(ctx, "a")
	_, _ = m.EmbedTexts(ctx, []string{"a", "b", "c"})
	require.NoError(t, m.Prepare(ctx))

	assert.Equal(t, 2, m.CallCount())
	assert.Equal(t, 1, m.EmbedTextsCalls())
	assert.Equal(t, 3, m.EmbeddedTexts())
	assert.Equal(t, 1, m.PrepareCalls())

	m.Reset()
	assert.Equal(t, 0, m.CallCount())
	assert.Equal(t, 0, m.EmbeddedTexts())
}

func TestMockEmbedder_InjectedBehavior(t *testing.T) {
	m := NewMockEmbedder()
	boom := errors.New("boom")
	m.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) { return nil, boom }
	m.PrepareFunc = func(ctx context.Context) error { return boom }

	_, err := m.EmbedText(context.Background(), "x")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.Prepare(context.Background()), boom)
	assert.Equal(t, "mock", m.Model())
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider().(*MockProvider)
	assert.Same(t, p.GetMockEmbedder(), p.Embedder())
	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}
