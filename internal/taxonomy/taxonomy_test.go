package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/exercise-discovery/internal/domain"
)

func TestDefaultIsConsistent(t *testing.T) {
	tax := Default()
	require.Greater(t, tax.Len(), 10)

	seen := map[string]bool{}
	for _, f := range tax.Families() {
		assert.False(t, seen[f.ID], "duplicate id %s", f.ID)
		seen[f.ID] = true
		assert.True(t, f.Category.IsValid(), f.ID)
		assert.NotEmpty(t, f.SearchTerms, f.ID)
		for sport, rel := range f.SportRelevance {
			assert.True(t, tax.HasSport(sport))
			assert.GreaterOrEqual(t, rel, 0)
			assert.LessOrEqual(t, rel, 10)
		}
	}
	assert.True(t, tax.HasSport("tennis"))
	assert.False(t, tax.HasSport("curling"))
	assert.Contains(t, tax.SportTerms("tennis"), "tennis agility training")
}

func TestNewRejectsBadFamilies(t *testing.T) {
	_, err := New([]Family{{ID: "a", BaseExercise: "A", Category: domain.CategoryStrength}, {ID: "a", BaseExercise: "B", Category: domain.CategoryPower}}, nil)
	assert.ErrorIs(t, err, ErrDuplicateFamily)

	_, err = New([]Family{{ID: "x", BaseExercise: "X", Category: "cardio"}}, nil)
	assert.ErrorIs(t, err, ErrInvalidFamily)

	_, err = New([]Family{{ID: "", BaseExercise: "X", Category: domain.CategoryStrength}}, nil)
	assert.ErrorIs(t, err, ErrInvalidFamily)
}

func TestAccessorsReturnCopies(t *testing.T) {
	tax := Default()
	f, ok := tax.Family("squat")
	require.True(t, ok)
	f.SearchTerms[0] = "mutated"
	f.SportRelevance["football"] = 0

	again, _ := tax.Family("squat")
	assert.Equal(t, "squat", again.SearchTerms[0])
	assert.Equal(t, 9, again.SportRelevance["football"])

	sports := tax.Sports()
	sports[0] = "zzz"
	assert.NotEqual(t, "zzz", tax.Sports()[0])
}

func TestLookup(t *testing.T) {
	tax := Default()

	f, ok := tax.Lookup("Squat Variations")
	require.True(t, ok)
	assert.Equal(t, "Barbell Back Squat", f.BaseExercise)

	f, ok = tax.Lookup("medicine ball throw technique")
	require.True(t, ok)
	assert.Equal(t, "med-ball-throw", f.ID)

	_, ok = tax.Lookup("underwater basket weaving")
	assert.False(t, ok)

	_, ok = tax.Lookup("   ")
	assert.False(t, ok)
}

func TestNilTaxonomyIsEmpty(t *testing.T) {
	var tax *Taxonomy
	assert.Zero(t, tax.Len())
	assert.Nil(t, tax.Families())
	assert.False(t, tax.HasSport("tennis"))
	_, ok := tax.Lookup("squat")
	assert.False(t, ok)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	body := `
families:
  - id: kb-swing
    name: Kettlebell Swing
    base_exercise: Russian Kettlebell Swing
    category: power
    primary_muscle_group: Glutes
    search_terms: [Kettlebell Swing]
    sport_relevance:
      golf: 8
sport_terms:
  golf: [golf hip power]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	tax, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tax.Len())
	assert.Equal(t, []string{"golf"}, tax.Sports())
	f, ok := tax.Lookup("kettlebell swing")
	require.True(t, ok)
	assert.Equal(t, domain.CategoryPower, f.Category)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("families: ["))
	assert.Error(t, err)

	_, err = Parse([]byte("sport_terms: {}"))
	assert.ErrorIs(t, err, ErrInvalidFamily)

	tax, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), tax.Len())
}
