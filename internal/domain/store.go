package domain

import (
	"fmt"
	"strings"
)

// StoreIdentifierMap links the externally assigned booking business id to
// the platform's internal place identifiers.
type StoreIdentifierMap struct {
	BookingBusinessID string
	PlaceID           string
	PlaceSeq          string
}

func (s StoreIdentifierMap) Resolved() bool {
	return s.PlaceID != "" && s.PlaceSeq != ""
}

func (s StoreIdentifierMap) ReviewURL(baseURL string) string {
	if s.PlaceSeq == "" {
		return ""
	}

	return fmt.Sprintf("%s/bizes/place/%s/reviews", strings.TrimRight(baseURL, "/"), s.PlaceSeq)
}

// NormalizeBusinessIDs trims ids and drops blanks and duplicates while
// keeping the first-seen order.
func NormalizeBusinessIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	normalized := make([]string, 0, len(ids))
	for _, id := range ids {
		for _, part := range strings.Split(id, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
			normalized = append(normalized, trimmed)
		}
	}

	return normalized
}
