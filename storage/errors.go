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


package storage

import "errors"

var (
	// ErrNotFound indicates that the requested collection was not found.
	ErrNotFound = errors.New("collection not found")

	// ErrCollectionExists indicates a collection with the same name already exists.
	ErrCollectionExists = errors.New("collection already exists")

	// ErrCollectionIncomplete indicates a collection was created but never sealed,
	// usually because the process died while populating it.
	ErrCollectionIncomplete = errors.New("collection incomplete")

	// ErrCollectionSealed indicates an attempt to add entries to a sealed collection.
	ErrCollectionSealed = errors.New("collection is sealed")

	// ErrInvalidName indicates an unusable collection name.
	ErrInvalidName = errors.New("invalid collection name")

	// ErrDimensionMismatch indicates a vector whose size differs from the collection's.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidQuery indicates invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
