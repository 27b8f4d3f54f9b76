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


package core

import "errors"

// Failure kinds resolved at the boundaries of the search engine.
// Callers match them with errors.Is; the cause is wrapped alongside.
var (
	// ErrConfigurationUnavailable indicates the embedding capability is missing
	// or failed to initialize. It is permanent for the process lifetime.
	ErrConfigurationUnavailable = errors.New("embedding configuration unavailable")

	// ErrCatalogUnavailable indicates the icon catalog is missing or malformed.
	ErrCatalogUnavailable = errors.New("icon catalog unavailable")

	// ErrIndexUnavailable indicates the vector index could not be opened or built.
	ErrIndexUnavailable = errors.New("icon index unavailable")

	// ErrQueryFailure indicates a single vector query failed or returned nothing usable.
	// It only affects the call that observed it.
	ErrQueryFailure = errors.New("vector query failed")
)
