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


// Package search resolves free-text concept queries to icon references.
//
// The Searcher tries the most capable strategy it was constructed with and
// degrades per call:
//   - Vector search over the embedding index, run on a bounded worker pool
//   - Keyword matching over the eligible catalog records
//   - A fixed list of default icons
//
// Search never fails. Every call returns between one and k static icon paths.
package search
