// Package seed provides the fixed recipe catalog used to reseed a store.
//
// The default catalog ships embedded in the binary as YAML. Deployments that
// need a different fixture load their own file with LoadFile.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"goa.design/recipes/recipe"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Default returns the embedded seed catalog. Each call returns a fresh copy.
func Default() ([]recipe.Recipe, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// MustDefault is like Default but panics if the embedded catalog is invalid.
func MustDefault() []recipe.Recipe {
	catalog, err := Default()
	if err != nil {
		panic(err)
	}
	return catalog
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) ([]recipe.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	catalog, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Load decodes a YAML sequence of recipes from r and validates it. Every
// recipe must carry a positive id and ids must be unique.
func Load(r io.Reader) ([]recipe.Recipe, error) {
	var catalog []recipe.Recipe
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return []recipe.Recipe{}, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validate(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func validate(catalog []recipe.Recipe) error {
	seen := make(map[int]struct{}, len(catalog))
	for i, r := range catalog {
		if r.ID <= 0 {
			return fmt.Errorf("catalog entry %d (%q): %w", i, r.Title, recipe.ErrInvalidID)
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("catalog entry %d: duplicate recipe id %d", i, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
