package core

import (
	"encoding/hex"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

const (
	// EligibleVariant is the only icon style that may be indexed, matched or returned.
	EligibleVariant = "bold"

	// IconPathPrefix is the static route every returned icon reference lives under.
	IconPathPrefix = "/static/icons/bold/"
)

// IconRecord is a single icon from the catalog.
// The ID is the icon's globally unique canonical name, e.g. "home-bold".
type IconRecord struct {
	ID   string
	Tags []string
}

// Variant returns the trailing hyphen-delimited segment of the record ID.
func (r IconRecord) Variant() string {
	return VariantOf(r.ID)
}

// Eligible reports whether the record may be indexed, matched or returned.
func (r IconRecord) Eligible() bool {
	return r.Variant() == EligibleVariant
}

// VariantOf returns the trailing hyphen-delimited segment of an icon ID.
func VariantOf(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Document is the embeddable form of an eligible IconRecord.
// It only exists in memory while an index is being built.
type Document struct {
	ID   string
	Text string
}

// NewDocument derives the document for a record.
// Text is the ID followed by the tags, space separated.
func NewDocument(r IconRecord) Document {
	text := r.ID
	if len(r.Tags) > 0 {
		text += " " + strings.Join(r.Tags, " ")
	}
	return Document{ID: r.ID, Text: text}
}

// DocumentsFromRecords builds documents for the eligible records, in order.
func DocumentsFromRecords(records []IconRecord) []Document {
	docs := make([]Document, 0, len(records))
	for _, r := range records {
		if !r.Eligible() {
			continue
		}
		docs = append(docs, NewDocument(r))
	}
	return docs
}

// IconPath maps an icon ID to its static path.
func IconPath(id string) string {
	return IconPathPrefix + id + ".svg"
}

// IconPaths maps icon IDs to static paths, preserving order.
func IconPaths(ids []string) []string {
	paths := make([]string, len(ids))
	for i, id := range ids {
		paths[i] = IconPath(id)
	}
	return paths
}

// Fingerprint computes a BLAKE2b digest over the records in order.
// Two catalogs with the same eligible icons and tags share a fingerprint,
// which lets a persisted index be traced back to the catalog that built it.
func Fingerprint(records []IconRecord) string {
	h, _ := blake2b.New(16, nil) // 16 bytes is plenty to tell catalogs apart
	for _, r := range records {
		h.Write([]byte(r.ID))
		h.Write([]byte{0})
		for _, tag := range r.Tags {
			h.Write([]byte(tag))
			h.Write([]byte{1})
		}
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
