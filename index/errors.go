package index

import "errors"

var (
	// ErrStoreRequired is returned when a store is not provided.
	ErrStoreRequired = errors.New("index store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoDocuments indicates there was nothing to build a new collection from.
	ErrNoDocuments = errors.New("no documents to index")

	// ErrEmbedderMismatch indicates a stored collection was built with a
	// different embedding model than the one configured now.
	ErrEmbedderMismatch = errors.New("collection was built with a different embedding model")
)
