// Package index ensures a persistent embedding collection exists for the icon
// catalog and exposes nearest-neighbor queries over it.
//
// EnsureIndex follows a strict order so that a warm start never re-embeds
// anything:
//
//  1. prepare the embedder, if it needs preparing
//  2. open the collection by name; a sealed collection is returned as is
//  3. drop a collection left unsealed by an interrupted build
//  4. with no documents, give up
//  5. create, populate in batches, seal
//
// Every failure is reported as core.ErrIndexUnavailable, with
// core.ErrConfigurationUnavailable alongside it when the embedder is at fault.
package index
