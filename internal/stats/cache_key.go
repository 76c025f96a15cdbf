package stats

import (
	"fmt"

	"turf_analytics_backend/internal/models"
)

// CacheKey fingerprints a computation for the result cache. The key folds
// in the scope label, the dimension (and category key where relevant),
// the collection length and its boundary sequence ids, so a changed
// collection can never surface a stale result under the same key.
//
// Keys are prefixed "scope|", which is what ClearScope matches against.
func CacheKey(scope, dimension, categoryKey string, records []models.BookingRecord) string {
	var first, last int64
	if len(records) > 0 {
		first = records[0].SequenceID
		last = records[len(records)-1].SequenceID
	}
	return fmt.Sprintf("%s|%s|%s|n=%d|%d-%d", scope, dimension, categoryKey, len(records), first, last)
}

// ScopePrefix is the prefix shared by every cache key of a scope, used
// for scope-wide invalidation.
func ScopePrefix(scope string) string {
	return scope + "|"
}
