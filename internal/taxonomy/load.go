package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileFormat struct {
	Families   []Family            `yaml:"families"`
	SportTerms map[string][]string `yaml:"sport_terms"`
}

// Load reads a taxonomy from a YAML file. An empty path returns Default().
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file: %w", err)
	}
	return Parse(data)
}

// Parse builds a taxonomy from YAML bytes.
func Parse(data []byte) (*Taxonomy, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	if len(ff.Families) == 0 {
		return nil, fmt.Errorf("%w: taxonomy defines no families", ErrInvalidFamily)
	}
	return New(ff.Families, ff.SportTerms)
}
