package core

// Tier identifies the most capable search strategy available to a searcher.
// It is decided once when the searcher is constructed and never changes.
type Tier int

const (
	// TierDefault serves only the fixed default icon.
	TierDefault Tier = iota
	// TierKeyword serves substring matches over the catalog.
	TierKeyword
	// TierVector serves nearest-neighbor matches from the embedding index.
	TierVector
)

// String returns the tier's short name, as used in logs and metrics labels.
func (t Tier) String() string {
	switch t {
	case TierVector:
		return "vector"
	case TierKeyword:
		return "keyword"
	case TierDefault:
		return "default"
	default:
		return "unknown"
	}
}
