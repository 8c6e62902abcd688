package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/appscout/core"
)

// Key prefixes for different data types
const (
	appRecordPrefix   = "apprec"
	appStoreIDPrefix  = "apprecs"
	appCategoryPrefix = "apprecc"
)

// makeAppKey generates a key for an app by ID.
func makeAppKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", appRecordPrefix, id))
}

// makeStoreIDKey generates a key for the store-identifier index.
// Format: prefix:appID
func makeStoreIDKey(appID string) []byte {
	return []byte(appStoreIDPrefix + ":" + appID)
}

// makeCategoryKey generates a composite key for the category index.
// Format: prefix:category:id
// The category is lowercased so lookups are case-insensitive.
func makeCategoryKey(category string, id core.ID) []byte {
	prefix := appCategoryPrefix + ":" + strings.ToLower(category) + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialCategoryKey generates a partial key for category queries.
// Format: prefix:category:
func makePartialCategoryKey(category string) []byte {
	return []byte(appCategoryPrefix + ":" + strings.ToLower(category) + ":")
}
