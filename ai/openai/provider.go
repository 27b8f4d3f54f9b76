// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"log/slog"
	"sync"

	"github.com/poiesic/iconfinder/ai"
)

// Provider owns the embedder used to build and query the icon index
// against an OpenAI-compatible endpoint.
type Provider struct {
	embedder  *Embedder
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewProvider validates config and creates the embedder for its model.
// No request is made to the endpoint; call Prepare on the embedder to
// check that the model is served.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		embedder: embedder,
		logger: slog.Default().With("component", "openai-provider",
			"host", config.EmbeddingHost, "model", config.EmbeddingModel),
	}, nil
}

// Embedder returns the embedder for the configured model.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is safe to call more than once. The HTTP client behind the
// embedder holds no connections that need closing.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		p.logger.Debug("closing embedding provider")
	})
	return nil
}
