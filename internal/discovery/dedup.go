package discovery

import (
	"sort"
	"strings"

	"alcyxob/exercise-discovery/internal/domain"
)

// Fingerprint builds the near-duplicate key for a candidate: the first three
// alphabetically sorted name words, then muscle group and category, all lowercase.
//
//	"Squat Barbell Back", Legs, strength -> "back_barbell_squat_legs_strength"
func Fingerprint(c domain.Candidate) string {
	words := strings.Fields(strings.ToLower(c.Name))
	sort.Strings(words)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, "_") + "_" +
		strings.ToLower(strings.TrimSpace(c.PrimaryMuscleGroup)) + "_" +
		strings.ToLower(string(c.Category))
}

// Deduplicate keeps one candidate per fingerprint. The first one seen holds
// its position; a later one with a strictly higher score replaces it there.
func Deduplicate(cs []domain.Candidate) ([]domain.Candidate, int) {
	index := make(map[string]int, len(cs))
	kept := make([]domain.Candidate, 0, len(cs))
	for _, c := range cs {
		key := Fingerprint(c)
		i, seen := index[key]
		if !seen {
			index[key] = len(kept)
			kept = append(kept, c)
			continue
		}
		if c.QualityScore > kept[i].QualityScore {
			kept[i] = c
		}
	}
	return kept, len(cs) - len(kept)
}
