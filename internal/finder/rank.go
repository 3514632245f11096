package finder

import (
	"sort"
	"xpath-finder/internal/entity"
)

// rankCandidates deduplicates by (locator, tag) keeping the higher
// confidence, sorts by confidence descending with discovery order
// preserved among ties, truncates to limit and assigns 1-based ranks.
// Candidates with an empty locator never survive ranking.
func rankCandidates(candidates []entity.Candidate, limit int) []entity.Candidate {
	type dedupKey struct {
		locator string
		tag     string
	}

	index := make(map[dedupKey]int, len(candidates))
	kept := make([]entity.Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c.Locator == "" {
			continue
		}

		key := dedupKey{c.Locator, c.Tag}
		if i, ok := index[key]; ok {
			if c.Confidence > kept[i].Confidence {
				kept[i] = c
			}

			continue
		}

		index[key] = len(kept)
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Confidence > kept[j].Confidence
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}

	for i := range kept {
		kept[i].Rank = i + 1
	}

	return kept
}
