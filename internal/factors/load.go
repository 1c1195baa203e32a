package factors

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed factors.yaml
var defaultFactorsYAML []byte

// tableFile is the YAML wire format for a factor table.
type tableFile struct {
	Version string                         `yaml:"version"`
	Factors map[Category]map[string]Factor `yaml:"factors"`
}

// Parse builds a Table from YAML data and validates it.
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse factor table: %w", err)
	}

	t := &Table{version: file.Version, entries: file.Factors}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Load reads a factor table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factor table: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded factor set shipped with the binary.
func Default() *Table {
	t, err := Parse(defaultFactorsYAML)
	if err != nil {
		// The embedded table is validated by tests; a parse failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded factor table invalid: %v", err))
	}
	return t
}
