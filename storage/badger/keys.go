package badger

import (
	"encoding/binary"

	"github.com/poiesic/souk/core"
)

// Key prefixes for different data types
const (
	relationPrefix = "relres"
)

// makeRelationKey generates a key for a cached resolution by its normalized
// query key. The ID is written in BigEndian order so lexicographic iteration
// visits keys in numeric order.
func makeRelationKey(key core.ID) []byte {
	prefix := relationPrefix + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(key))
	return buf
}

// relationKeyID extracts the normalized query key from a storage key.
func relationKeyID(storageKey []byte) (core.ID, bool) {
	prefixLen := len(relationPrefix) + 1
	if len(storageKey) != prefixLen+8 {
		return 0, false
	}
	return core.ID(binary.BigEndian.Uint64(storageKey[prefixLen:])), true
}
