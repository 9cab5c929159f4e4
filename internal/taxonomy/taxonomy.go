// Package taxonomy holds the catalog of exercise families that drives search-term
// generation and the deterministic fallback generator.
//
// A Taxonomy is built once at startup and never mutated; accessors hand out copies.
package taxonomy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"alcyxob/exercise-discovery/internal/domain"
)

var (
	ErrDuplicateFamily = errors.New("duplicate family id")
	ErrInvalidFamily   = errors.New("invalid family")
)

// Family is one group of related exercises (e.g. the squat family).
// SportRelevance is scored 0-10 per sport identifier.
type Family struct {
	ID                    string          `yaml:"id"`
	Name                  string          `yaml:"name"`
	BaseExercise          string          `yaml:"base_exercise"`
	Description           string          `yaml:"description"`
	PrimaryMuscleGroup    string          `yaml:"primary_muscle_group"`
	SecondaryMuscleGroups []string        `yaml:"secondary_muscle_groups"`
	Category              domain.Category `yaml:"category"`
	Equipment             string          `yaml:"equipment"`
	Variations            []string        `yaml:"variations"`
	SearchTerms           []string        `yaml:"search_terms"`
	SportRelevance        map[string]int  `yaml:"sport_relevance"`
}

func (f Family) clone() Family {
	out := f
	out.SecondaryMuscleGroups = append([]string(nil), f.SecondaryMuscleGroups...)
	out.Variations = append([]string(nil), f.Variations...)
	out.SearchTerms = append([]string(nil), f.SearchTerms...)
	out.SportRelevance = make(map[string]int, len(f.SportRelevance))
	for k, v := range f.SportRelevance {
		out.SportRelevance[k] = v
	}
	return out
}

// MaxRelevance returns the family's highest relevance score across all sports.
func (f Family) MaxRelevance() int {
	max := 0
	for _, v := range f.SportRelevance {
		if v > max {
			max = v
		}
	}
	return max
}

// Taxonomy is an immutable catalog of families plus sport-specific search terms.
// A nil *Taxonomy behaves as an empty catalog.
type Taxonomy struct {
	families   []Family
	byID       map[string]int
	sportTerms map[string][]string
	sports     []string
}

// New validates and copies the given data into a Taxonomy.
func New(families []Family, sportTerms map[string][]string) (*Taxonomy, error) {
	t := &Taxonomy{
		families:   make([]Family, 0, len(families)),
		byID:       make(map[string]int, len(families)),
		sportTerms: make(map[string][]string, len(sportTerms)),
	}
	sportSet := map[string]struct{}{}

	for _, f := range families {
		f.ID = strings.TrimSpace(f.ID)
		if f.ID == "" || strings.TrimSpace(f.BaseExercise) == "" {
			return nil, fmt.Errorf("%w: id and base_exercise are required (family %q)", ErrInvalidFamily, f.Name)
		}
		if !f.Category.IsValid() {
			return nil, fmt.Errorf("%w: family %q has category %q", ErrInvalidFamily, f.ID, f.Category)
		}
		if _, dup := t.byID[f.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFamily, f.ID)
		}
		c := f.clone()
		for i, term := range c.SearchTerms {
			c.SearchTerms[i] = strings.ToLower(strings.TrimSpace(term))
		}
		for sport := range c.SportRelevance {
			sportSet[sport] = struct{}{}
		}
		t.byID[c.ID] = len(t.families)
		t.families = append(t.families, c)
	}

	for sport, terms := range sportTerms {
		sportSet[sport] = struct{}{}
		cp := make([]string, 0, len(terms))
		for _, term := range terms {
			if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
				cp = append(cp, term)
			}
		}
		t.sportTerms[sport] = cp
	}

	for sport := range sportSet {
		t.sports = append(t.sports, sport)
	}
	sort.Strings(t.sports)
	return t, nil
}

// Len reports the number of families.
func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.families)
}

// Families returns a copy of every family in catalog order.
func (t *Taxonomy) Families() []Family {
	if t == nil {
		return nil
	}
	out := make([]Family, len(t.families))
	for i, f := range t.families {
		out[i] = f.clone()
	}
	return out
}

func (t *Taxonomy) Family(id string) (Family, bool) {
	if t == nil {
		return Family{}, false
	}
	i, ok := t.byID[id]
	if !ok {
		return Family{}, false
	}
	return t.families[i].clone(), true
}

// Sports lists every sport the taxonomy knows about, sorted.
func (t *Taxonomy) Sports() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.sports...)
}

// HasSport reports whether any family or sport term references sport.
func (t *Taxonomy) HasSport(sport string) bool {
	if t == nil {
		return false
	}
	i := sort.SearchStrings(t.sports, sport)
	return i < len(t.sports) && t.sports[i] == sport
}

// SportTerms returns the sport-specific search terms for sport.
func (t *Taxonomy) SportTerms(sport string) []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.sportTerms[sport]...)
}

// Lookup finds the first family whose search terms match term by substring
// containment in either direction (case-insensitive).
func (t *Taxonomy) Lookup(term string) (Family, bool) {
	if t == nil {
		return Family{}, false
	}
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return Family{}, false
	}
	for _, f := range t.families {
		for _, st := range f.SearchTerms {
			if st == "" {
				continue
			}
			if strings.Contains(needle, st) || strings.Contains(st, needle) {
				return f.clone(), true
			}
		}
	}
	return Family{}, false
}
