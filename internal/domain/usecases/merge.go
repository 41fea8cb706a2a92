// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
package usecases

import (
	"sort"
	"strings"

	"github.com/leanaid/leanaid-go/internal/domain/entities"
)

// DefaultSuggestionLimit bounds the size of one suggestion response.
const DefaultSuggestionLimit = 6

// Merge combines two suggestion lists into one ranked result.
// Primary items win on duplicate content (case-insensitive); ordering is by
// confidence descending with ties keeping their relative input order, and
// the result is truncated to limit.
func Merge(primary, secondary []entities.Suggestion, limit int) []entities.Suggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	seen := make(map[string]bool, len(primary)+len(secondary))
	merged := make([]entities.Suggestion, 0, len(primary)+len(secondary))
	add := func(items []entities.Suggestion) {
		for _, s := range items {
			key := strings.ToLower(s.Content)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, s)
		}
	}
	add(primary)
	add(secondary)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
