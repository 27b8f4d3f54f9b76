package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantOf(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"home-bold", "bold"},
		{"home-linear", "linear"},
		{"document-text-bold", "bold"},
		{"bold", "bold"},
		{"home-", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, VariantOf(tt.id))
		})
	}
}

func TestIconRecord_Eligible(t *testing.T) {
	assert.True(t, IconRecord{ID: "home-bold"}.Eligible())
	assert.False(t, IconRecord{ID: "home-linear"}.Eligible())
	assert.False(t, IconRecord{ID: "bold-home"}.Eligible())
	assert.False(t, IconRecord{ID: "home-Bold"}.Eligible())
}

func TestNewDocument(t *testing.T) {
	t.Run("with tags", func(t *testing.T) {
		doc := NewDocument(IconRecord{ID: "home-bold", Tags: []string{"house", "building"}})
		assert.Equal(t, "home-bold", doc.ID)
		assert.Equal(t, "home-bold house building", doc.Text)
	})

	t.Run("without tags", func(t *testing.T) {
		doc := NewDocument(IconRecord{ID: "home-bold"})
		assert.Equal(t, "home-bold", doc.Text)
	})
}

func TestDocumentsFromRecords(t *testing.T) {
	records := []IconRecord{
		{ID: "home-bold", Tags: []string{"house"}},
		{ID: "home-linear", Tags: []string{"house"}},
		{ID: "car-bold", Tags: []string{"vehicle"}},
	}

	docs := DocumentsFromRecords(records)
	assert.Equal(t, []Document{
		{ID: "home-bold", Text: "home-bold house"},
		{ID: "car-bold", Text: "car-bold vehicle"},
	}, docs)
}

func TestIconPaths(t *testing.T) {
	assert.Equal(t, "/static/icons/bold/home-bold.svg", IconPath("home-bold"))
	assert.Equal(t, []string{
		"/static/icons/bold/a-bold.svg",
		"/static/icons/bold/b-bold.svg",
	}, IconPaths([]string{"a-bold", "b-bold"}))
	assert.Empty(t, IconPaths(nil))
}

func TestFingerprint(t *testing.T) {
	a := []IconRecord{{ID: "home-bold", Tags: []string{"house"}}}
	b := []IconRecord{{ID: "home-bold", Tags: []string{"house"}}}
	c := []IconRecord{{ID: "home-bold", Tags: []string{"houses"}}}
	// tags must not bleed into ids
	d := []IconRecord{{ID: "home-boldhouse"}}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(d))
	assert.Len(t, Fingerprint(nil), 32)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "vector", TierVector.String())
	assert.Equal(t, "keyword", TierKeyword.String())
	assert.Equal(t, "default", TierDefault.String())
	assert.Equal(t, "unknown", Tier(42).String())
}
