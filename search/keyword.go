package search

import (
	"strings"

	"github.com/poiesic/iconfinder/core"
)

type keywordEntry struct {
	id   string
	keys []string // lowercase id followed by lowercase tags
}

// KeywordMatcher does case-insensitive substring matching over icon IDs
// and tags. It is immutable and safe for concurrent use.
type KeywordMatcher struct {
	entries []keywordEntry
}

// NewKeywordMatcher indexes the eligible records, keeping their order.
func NewKeywordMatcher(records []core.IconRecord) *KeywordMatcher {
	m := &KeywordMatcher{entries: make([]keywordEntry, 0, len(records))}
	for _, r := range records {
		if !r.Eligible() {
			continue
		}
		keys := make([]string, 0, len(r.Tags)+1)
		keys = append(keys, strings.ToLower(r.ID))
		for _, tag := range r.Tags {
			keys = append(keys, strings.ToLower(tag))
		}
		m.entries = append(m.entries, keywordEntry{id: r.ID, keys: keys})
	}
	return m
}

// Len returns the number of records the matcher scans.
func (m *KeywordMatcher) Len() int {
	return len(m.entries)
}

// Match returns up to k IDs whose ID or any tag contains the query, in
// catalog order. A query with no matches, or a blank one, yields Defaults(k).
func (m *KeywordMatcher) Match(query string, k int) []string {
	k = max(k, 1)
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return Defaults(k)
	}

	var ids []string
	for _, e := range m.entries {
		if len(ids) == k {
			break
		}
		for _, key := range e.keys {
			if strings.Contains(key, needle) {
				ids = append(ids, e.id)
				break
			}
		}
	}
	if len(ids) == 0 {
		return Defaults(k)
	}
	return ids
}
