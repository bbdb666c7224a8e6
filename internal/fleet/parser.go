package fleet

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Load reads, validates and parses a fleet manifest.
func Load(path string) (*Fleet, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating fleet manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("fleet manifest %s is invalid: %s", path, result.Summary())
	}

	return Parse(data, path)
}

// Parse unmarshals YAML data into a Fleet without schema validation.
func Parse(data []byte, path string) (*Fleet, error) {
	var f Fleet
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fleet manifest %s: %w", path, err)
	}
	for i := range f.Repos {
		f.Repos[i].Name = strings.TrimSpace(f.Repos[i].Name)
	}
	return &f, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
