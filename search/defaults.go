package search

// UltimateDefault is served when there is no catalog to search at all.
const UltimateDefault = "document-text-bold"

var defaultIDs = []string{"document-text-bold", "presentation-bold", "file-bold"}

// Defaults returns the first k default icon IDs. The list is never padded,
// so k larger than the list yields the whole list. k < 1 is treated as 1.
func Defaults(k int) []string {
	k = max(k, 1)
	k = min(k, len(defaultIDs))
	ids := make([]string, k)
	copy(ids, defaultIDs)
	return ids
}
