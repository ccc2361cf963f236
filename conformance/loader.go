package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FixtureDir is where fixture files live, relative to the conformance
// package directory.
const FixtureDir = "fixtures"

// LoadFixtures walks dir and parses every *.yaml file into a Fixture.
func LoadFixtures(dir string) ([]Fixture, error) {
	var fixtures []Fixture

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var f Fixture
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fixtures = append(fixtures, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fixtures, nil
}
