package index

import (
	"context"
	"fmt"

	"github.com/poiesic/iconfinder/ai"
	"github.com/poiesic/iconfinder/core"
	"github.com/poiesic/iconfinder/storage"
)

// Index is a handle on a sealed collection plus the embedder its vectors
// came from. It is read-only and safe for concurrent queries.
type Index struct {
	collection storage.Collection
	embedder   ai.Embedder
	info       storage.CollectionInfo
}

// Info returns the collection metadata captured when the handle was obtained.
func (i *Index) Info() storage.CollectionInfo {
	return i.info
}

// Query embeds text and returns up to k document IDs by descending similarity.
// Errors are wrapped with core.ErrQueryFailure.
func (i *Index) Query(ctx context.Context, text string, k int) ([]string, error) {
	vector, err := i.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding query: %w", core.ErrQueryFailure, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", core.ErrQueryFailure)
	}

	matches, err := i.collection.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrQueryFailure, err)
	}

	ids := make([]string, len(matches))
	for n, m := range matches {
		ids[n] = m.ID
	}
	return ids, nil
}
