package openai

import (
	"testing"

	"github.com/poiesic/iconfinder/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig(
		ai.WithEmbeddingHost("http://localhost:11434"),
		ai.WithEmbeddingModel("all-minilm"),
	))
	require.NoError(t, err)

	embedder := provider.Embedder()
	require.NotNil(t, embedder)
	assert.Equal(t, "all-minilm", embedder.Model())
	_, ok := embedder.(ai.Preparer)
	assert.True(t, ok, "embedder should support Prepare")

	assert.NoError(t, provider.Close())
	assert.NoError(t, provider.Close())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []ai.ConfigOption
	}{
		{"missing host", []ai.ConfigOption{ai.WithEmbeddingHost("")}},
		{"missing model", []ai.ConfigOption{ai.WithEmbeddingModel("")}},
		{"zero batch size", []ai.ConfigOption{ai.WithBatchSize(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(ai.NewConfig(tt.opts...))
			assert.Error(t, err)
			assert.Nil(t, provider)
		})
	}
}
