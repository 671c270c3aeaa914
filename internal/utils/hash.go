package utils

import (
	"hash/fnv"
	"strconv"
	"strings"
)

func HashStringToUint64(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// DerivedStoreID builds a stable identifier for catalog rows that carry none.
func DerivedStoreID(name, postcode string) string {
	key := strings.ToUpper(strings.TrimSpace(name)) + "|" + strings.ToUpper(strings.TrimSpace(postcode))
	return "store-" + strconv.FormatUint(HashStringToUint64(key), 36)
}
