// Package catalog loads the static content catalog and quiz definition from
// YAML data files. Loading happens once at startup; the returned structures
// are treated as immutable by every consumer.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	domcat "github.com/propwijzer/propwijzer/internal/domain/catalog"
	domquiz "github.com/propwijzer/propwijzer/internal/domain/quiz"
)

const (
	catalogFile = "catalog.yaml"
	quizFile    = "quiz.yaml"
)

// Load reads catalog.yaml and quiz.yaml from dir and validates both.
func Load(dir string) (*domcat.Catalog, *domquiz.Definition, error) {
	cat, err := LoadCatalog(filepath.Join(dir, catalogFile))
	if err != nil {
		return nil, nil, err
	}

	def, err := LoadQuiz(filepath.Join(dir, quizFile))
	if err != nil {
		return nil, nil, err
	}

	return cat, def, nil
}

// LoadCatalog reads and validates a single catalog YAML file.
func LoadCatalog(path string) (*domcat.Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var cat domcat.Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog %s: %w", path, err)
	}

	return &cat, nil
}

// LoadQuiz reads and validates a single quiz definition YAML file.
func LoadQuiz(path string) (*domquiz.Definition, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read quiz %s: %w", path, err)
	}

	var def domquiz.Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse quiz %s: %w", path, err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("validate quiz %s: %w", path, err)
	}

	return &def, nil
}
