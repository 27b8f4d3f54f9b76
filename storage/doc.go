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


// Package storage provides the persistent vector collection abstraction.
//
// A Collection is a named, disk-persisted set of embedded documents keyed by
// document ID and ranked by a fixed Metric. Collections are created empty,
// populated, then sealed; a sealed collection is read-only and is what the
// icon index reuses on warm starts. A collection that was created but never
// sealed is reported as ErrCollectionIncomplete so callers can drop and
// rebuild it.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces to keep consumers decoupled from
// BadgerDB specifics:
//
//	store, err := badger.OpenStore("/path/to/index")  // returns storage.Store
//
// # Usage
//
//	col, err := store.CreateCollection(ctx, storage.CollectionInfo{
//	    Name:   "icons",
//	    Metric: storage.MetricCosine,
//	})
//	err = col.Add(ctx, storage.Entry{ID: "home-bold", Text: "home-bold house", Vector: v})
//	err = col.Seal(ctx)
//	matches, err := col.Query(ctx, queryVector, 5)
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryStore()
//
// # Thread Safety
//
// All implementations must be thread-safe. Queries run in read-only
// transactions and may proceed concurrently.
package storage
