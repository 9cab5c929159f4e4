package discovery

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/taxonomy"
)

// categoryHints is checked in order; the first hit wins. Strength is the default.
var categoryHints = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryPower, []string{"power", "explosive", "plyometric", "jump", "throw", "ballistic", "sprint"}},
	{domain.CategoryEndurance, []string{"endurance", "conditioning", "interval", "cardio", "capacity"}},
	{domain.CategoryBalance, []string{"balance", "stability", "proprioception", "single leg"}},
	{domain.CategoryMobility, []string{"mobility", "stretch", "flexibility", "yoga"}},
	{domain.CategorySportSpecific, []string{"agility", "footwork", "drill", "tennis", "basketball", "soccer", "football", "baseball", "volleyball", "golf", "hockey", "swimming"}},
}

// fallbackCandidates synthesizes candidates for term without any provider.
// The result is a pure function of term, maxExercises and the taxonomy, apart from
// the provenance fields the caller stamps afterwards.
func fallbackCandidates(tax *taxonomy.Taxonomy, term string, maxExercises int) ([]domain.Candidate, domain.DiscoveryMethod) {
	if maxExercises < 1 {
		maxExercises = 1
	}
	if f, ok := tax.Lookup(term); ok {
		out := []domain.Candidate{familyCandidate(f, f.BaseExercise)}
		if maxExercises > 1 && len(f.Variations) > 0 {
			out = append(out, familyCandidate(f, f.Variations[0]))
		}
		return out, domain.MethodTaxonomyFallback
	}

	title := titleCase(term)
	category := inferCategory(term)
	out := []domain.Candidate{genericCandidate(title+" Foundation", term, category)}
	if maxExercises > 1 {
		out = append(out, genericCandidate(title+" Variation 2", term, category))
	}
	return out, domain.MethodFallback
}

func familyCandidate(f taxonomy.Family, name string) domain.Candidate {
	return domain.Candidate{
		Name:                  name,
		Description:           f.Description,
		Category:              f.Category,
		PrimaryMuscleGroup:    f.PrimaryMuscleGroup,
		SecondaryMuscleGroups: append([]string(nil), f.SecondaryMuscleGroups...),
		Equipment:             f.Equipment,
		Difficulty:            domain.DifficultyIntermediate,
		Instructions: []string{
			fmt.Sprintf("Set up for the %s with a stable, braced position.", name),
			"Perform the movement through a controlled, pain-free range of motion.",
			"Return to the start position and repeat for the prescribed repetitions.",
		},
		CoachingCues:      []string{"Brace the trunk before each rep", "Control the lowering phase"},
		SportApplications: prioritySports(f),
	}
}

func genericCandidate(name, term string, category domain.Category) domain.Candidate {
	return domain.Candidate{
		Name:               name,
		Description:        fmt.Sprintf("Foundational exercise for %s. Review and complete before publishing.", strings.ToLower(strings.TrimSpace(term))),
		Category:           category,
		PrimaryMuscleGroup: "Full Body",
		Equipment:          "Bodyweight",
		Difficulty:         domain.DifficultyBeginner,
		Instructions: []string{
			"Start in a balanced athletic stance.",
			"Perform the movement with control.",
			"Reset and repeat.",
		},
	}
}

// prioritySports lists the sports the family is most relevant to, sorted.
func prioritySports(f taxonomy.Family) []string {
	var out []string
	for sport, rel := range f.SportRelevance {
		if rel >= DefaultImportantRelevance {
			out = append(out, sport)
		}
	}
	sort.Strings(out)
	return out
}

func inferCategory(term string) domain.Category {
	t := strings.ToLower(term)
	for _, h := range categoryHints {
		if containsAny(t, h.keywords) {
			return h.category
		}
	}
	return domain.CategoryStrength
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
