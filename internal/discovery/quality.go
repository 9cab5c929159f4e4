package discovery

import (
	"strings"
	"unicode/utf8"

	"alcyxob/exercise-discovery/internal/domain"
)

const (
	DefaultQualityThreshold = 75

	fallbackGenericScore  = 70
	fallbackTaxonomyScore = 80
)

// EnhancedScore rates how complete and specific a candidate is, 0-100.
func EnhancedScore(c domain.Candidate, fctx FilterContext) int {
	score := 0
	if runeLen(c.Name) > 10 {
		score += 8
	}
	if runeLen(c.Description) > 50 {
		score += 8
	}
	if len(c.Instructions) >= 4 {
		score += 12
	}
	if len(c.CoachingCues) >= 2 {
		score += 6
	}
	if len(c.CommonMistakes) >= 2 {
		score += 6
	}
	if len(c.Benefits) >= 2 {
		score += 8
	}
	if runeLen(c.SetRepGuidelines) > 15 {
		score += 8
	}
	if len(c.Progressions) >= 2 {
		score += 8
	}
	if runeLen(c.SafetyNotes) > 10 {
		score += 6
	}
	if len(c.SecondaryMuscleGroups) > 0 {
		score += 5
	}
	if len(c.SportApplications) > 0 {
		score += 5
	}
	if c.Category.IsValid() {
		score += 5
	}
	if c.Difficulty.IsValid() {
		score += 5
	}
	if fctx.Sport != "" && appliesToSport(c, fctx.Sport) {
		score += 5
	}
	if fctx.FitnessComponent != "" && matchesComponent(c, fctx.FitnessComponent) {
		score += 5
	}
	return clamp(score)
}

// LegacyScore is the coarse formula: buckets of 20/15/20/15/10/10/5/5.
func LegacyScore(c domain.Candidate) int {
	score := 0
	if runeLen(c.Name) > 8 {
		score += 20
	}
	if runeLen(c.Description) > 50 {
		score += 15
	}
	if len(c.Instructions) >= 3 {
		score += 20
	}
	if len(c.CoachingCues) >= 2 {
		score += 15
	}
	if len(c.CommonMistakes) >= 1 {
		score += 10
	}
	if len(c.Benefits) >= 1 {
		score += 10
	}
	if c.Category.IsValid() {
		score += 5
	}
	if c.Difficulty.IsValid() {
		score += 5
	}
	return clamp(score)
}

// Scorer picks the formula for a candidate. Fallback candidates get fixed
// baselines since they lack the fields the formulas reward.
type Scorer struct {
	Mode domain.ScoringMode
}

func (s Scorer) Score(c domain.Candidate, fctx FilterContext) int {
	switch c.DiscoveryMethod {
	case domain.MethodFallback:
		return fallbackGenericScore
	case domain.MethodTaxonomyFallback:
		return fallbackTaxonomyScore
	}
	if s.Mode == domain.ScoringLegacy {
		return LegacyScore(c)
	}
	return EnhancedScore(c, fctx)
}

// ApplyQualityGate drops candidates scoring below threshold, preserving order.
func ApplyQualityGate(cs []domain.Candidate, threshold int) ([]domain.Candidate, int) {
	kept := make([]domain.Candidate, 0, len(cs))
	for _, c := range cs {
		if c.QualityScore >= threshold {
			kept = append(kept, c)
		}
	}
	return kept, len(cs) - len(kept)
}

func appliesToSport(c domain.Candidate, sport string) bool {
	for _, s := range c.SportApplications {
		if strings.EqualFold(strings.TrimSpace(s), sport) {
			return true
		}
	}
	return false
}

func matchesComponent(c domain.Candidate, component string) bool {
	component = strings.ToLower(strings.TrimSpace(component))
	if string(c.Category) == component {
		return true
	}
	hay := strings.ToLower(strings.Join(append([]string{c.Name, c.Description, string(c.Category)}, c.Benefits...), " "))
	return containsAny(hay, keywordsFor(component, componentKeywords))
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
