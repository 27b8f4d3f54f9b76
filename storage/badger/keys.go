package badger

// Key prefixes for different data types
const (
	collectionInfoPrefix  = "colinfo"
	collectionEntryPrefix = "colent"
)

// makeCollectionInfoKey generates the key holding a collection's metadata.
// Format: prefix:name
func makeCollectionInfoKey(name string) []byte {
	return []byte(collectionInfoPrefix + ":" + name)
}

// makeEntryPrefix generates the prefix shared by all entries of a collection.
// Collection names never contain ':' so the prefix is unambiguous.
// Format: prefix:name:
func makeEntryPrefix(name string) []byte {
	return []byte(collectionEntryPrefix + ":" + name + ":")
}

// makeEntryKey generates the key for one entry of a collection.
// Format: prefix:name:id
func makeEntryKey(name, id string) []byte {
	prefix := makeEntryPrefix(name)
	buf := make([]byte, len(prefix)+len(id))
	offset := copy(buf, prefix)
	copy(buf[offset:], id)
	return buf
}
