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


package search

import "errors"

var (
	// ErrInvalidQueryTimeout is returned when a non-positive query timeout is configured.
	ErrInvalidQueryTimeout = errors.New("query timeout must be positive")

	// ErrEmptyResult marks a vector query that produced no eligible icon.
	ErrEmptyResult = errors.New("vector query returned no eligible icons")

	// ErrQueryTimeout marks a vector query that did not answer in time.
	ErrQueryTimeout = errors.New("vector query timed out")
)
