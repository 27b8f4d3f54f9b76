package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/iconfinder/core"
)

// DefaultPath is where the catalog is read from when no path is configured.
const DefaultPath = "assets/icons.json"

type document struct {
	Icons *[]entry `json:"icons"`
}

type entry struct {
	Name string `json:"name"`
	Tags tags   `json:"tags"`
}

// tags accepts either a JSON array of strings or a single string of
// comma or whitespace separated words.
type tags []string

func (t *tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// Load reads the catalog file at path and returns its eligible records.
func Load(path string) ([]core.IconRecord, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrCatalogUnavailable, err)
	}
	defer f.Close()
	return Parse(f)
}

// LoadFS reads the named catalog from fsys and returns its eligible records.
func LoadFS(fsys fs.FS, name string) ([]core.IconRecord, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrCatalogUnavailable, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a catalog and returns its eligible records in load order.
// Duplicate names keep their first occurrence.
func Parse(r io.Reader) ([]core.IconRecord, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding catalog: %w", core.ErrCatalogUnavailable, err)
	}
	if doc.Icons == nil {
		return nil, fmt.Errorf("%w: catalog has no icons collection", core.ErrCatalogUnavailable)
	}

	entries := *doc.Icons
	records := make([]core.IconRecord, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	skipped := 0
	for _, e := range entries {
		record := core.IconRecord{ID: strings.TrimSpace(e.Name), Tags: []string(e.Tags)}
		if err := core.ValidateIconRecord(record); err != nil {
			skipped++
			continue
		}
		if _, dup := seen[record.ID]; dup {
			slog.Debug("skipping duplicate catalog entry", "id", record.ID)
			continue
		}
		seen[record.ID] = struct{}{}
		records = append(records, record)
	}

	slog.Debug("catalog parsed", "entries", len(entries), "eligible", len(records), "skipped", skipped)
	return records, nil
}
