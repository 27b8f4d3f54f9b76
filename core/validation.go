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

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidIconRecord indicates an IconRecord failed validation.
	ErrInvalidIconRecord = errors.New("invalid icon record")

	// ErrEmptyIconID indicates the record has no name.
	ErrEmptyIconID = errors.New("icon id cannot be empty")

	// ErrIneligibleVariant indicates the record is not of the eligible variant.
	ErrIneligibleVariant = errors.New("icon variant is not eligible")
)

// ValidateIconRecord validates a record for inclusion in the eligible set.
//
// Validation rules:
//   - ID must not be blank
//   - Variant must be EligibleVariant
//
// NOT validated (the catalog is trusted for these):
//   - path or URL safety of the ID
//   - Tags (may be empty)
func ValidateIconRecord(record IconRecord) error {
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIconRecord, ErrEmptyIconID)
	}
	if !record.Eligible() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidIconRecord, ErrIneligibleVariant, record.Variant())
	}
	return nil
}
