package discovery

import (
	"strings"

	"alcyxob/exercise-discovery/internal/taxonomy"
)

const (
	// DefaultImportantRelevance is the sport relevance a family needs to count as a priority.
	DefaultImportantRelevance = 7
	maxVariationBaseTerms     = 50
)

var variationSuffixes = []string{"variations", "technique", "progression", "form", "training"}

// componentKeywords maps a fitness component to the words that identify it.
var componentKeywords = map[string][]string{
	"power":     {"power", "explosive", "speed", "plyometric", "ballistic"},
	"strength":  {"strength", "squat", "deadlift", "press", "pull", "barbell"},
	"endurance": {"endurance", "conditioning", "interval", "carry", "capacity"},
	"agility":   {"agility", "change of direction", "footwork", "shuttle", "lateral"},
	"balance":   {"balance", "stability", "single leg", "proprioception"},
	"mobility":  {"mobility", "stretch", "flexibility", "range of motion"},
	"core":      {"core", "plank", "rotation", "anti-rotation", "anti-extension"},
	"speed":     {"speed", "sprint", "acceleration", "quick"},
}

var purposeKeywords = map[string][]string{
	"injury_prevention": {"prevention", "stability", "balance", "mobility", "shoulder", "control"},
	"performance":       {"power", "speed", "explosive", "sprint", "jump", "agility"},
	"rehabilitation":    {"mobility", "stability", "balance", "isometric", "control"},
	"general_fitness":   {"strength", "conditioning", "core", "endurance"},
	"muscle_building":   {"strength", "press", "row", "squat", "hypertrophy"},
}

// TermOptions narrows and augments the generated term list. Zero value means "everything".
type TermOptions struct {
	SportFilter            string
	FitnessComponentFilter string
	PurposeFilter          string
	MaxTerms               int
	IncludeVariations      bool
	PriorityOnly           bool
	ImportantThreshold     int
}

type termEntry struct {
	term     string
	haystack string
}

// GenerateSearchTerms expands the taxonomy into a deduplicated, ordered list of search terms.
// An unknown sport or an empty taxonomy yields an empty list.
func GenerateSearchTerms(tax *taxonomy.Taxonomy, opts TermOptions) []string {
	if tax.Len() == 0 {
		return []string{}
	}
	threshold := opts.ImportantThreshold
	if threshold <= 0 {
		threshold = DefaultImportantRelevance
	}
	sport := strings.ToLower(strings.TrimSpace(opts.SportFilter))
	if sport != "" && !tax.HasSport(sport) {
		return []string{}
	}

	var entries []termEntry
	for _, f := range tax.Families() {
		switch {
		case sport != "" && opts.PriorityOnly:
			if f.SportRelevance[sport] < threshold {
				continue
			}
		case sport != "":
			if f.SportRelevance[sport] <= 0 {
				continue
			}
		case opts.PriorityOnly:
			if f.MaxRelevance() < threshold {
				continue
			}
		}
		hay := strings.ToLower(strings.Join([]string{f.Name, f.BaseExercise, string(f.Category), f.Description}, " "))
		for _, term := range f.SearchTerms {
			entries = append(entries, termEntry{term: term, haystack: term + " " + hay})
		}
	}

	switch {
	case sport != "":
		for _, term := range tax.SportTerms(sport) {
			entries = append(entries, termEntry{term: term, haystack: term})
		}
	case !opts.PriorityOnly:
		for _, s := range tax.Sports() {
			for _, term := range tax.SportTerms(s) {
				entries = append(entries, termEntry{term: term, haystack: term})
			}
		}
	}

	entries = filterByKeywords(entries, opts.FitnessComponentFilter, componentKeywords)
	entries = filterByKeywords(entries, opts.PurposeFilter, purposeKeywords)

	base := uniqueTerms(entries)
	terms := base
	if opts.IncludeVariations {
		limit := len(base)
		if limit > maxVariationBaseTerms {
			limit = maxVariationBaseTerms
		}
		terms = append([]string(nil), base...)
		for _, term := range base[:limit] {
			for _, suffix := range variationSuffixes {
				if strings.Contains(term, suffix) {
					continue
				}
				terms = append(terms, term+" "+suffix)
			}
		}
		terms = dedupStrings(terms)
	}

	if opts.MaxTerms > 0 && len(terms) > opts.MaxTerms {
		terms = terms[:opts.MaxTerms]
	}
	return terms
}

// keywordsFor returns the mapped keywords, or the filter value itself when it is not a known key.
func keywordsFor(filter string, mapping map[string][]string) []string {
	key := strings.ToLower(strings.TrimSpace(filter))
	if key == "" {
		return nil
	}
	if kws, ok := mapping[key]; ok {
		return kws
	}
	return []string{strings.ReplaceAll(key, "_", " ")}
}

func filterByKeywords(entries []termEntry, filter string, mapping map[string][]string) []termEntry {
	kws := keywordsFor(filter, mapping)
	if kws == nil {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if containsAny(e.haystack, kws) {
			out = append(out, e)
		}
	}
	return out
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func uniqueTerms(entries []termEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.term)
	}
	return dedupStrings(out)
}

func dedupStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
