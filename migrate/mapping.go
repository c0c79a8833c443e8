package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// PageMapping pairs a page in the current version with where its content should end up.
type PageMapping struct {
	OldSlug string `yaml:"oldSlug" json:"oldSlug"`
	NewSlug string `yaml:"newSlug" json:"newSlug"`
}

// LoadMappings reads the mapping file, JSON or YAML.
func LoadMappings(path string) ([]PageMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("migrate: couldn't read mapping file: %w", err)
	}

	mappings, err := ParseMappings(raw)
	if err != nil {
		return nil, fmt.Errorf("migrate: %s: %w", path, err)
	}

	return mappings, nil
}

// ParseMappings decodes a mapping list.  Input that starts like JSON is decoded as JSON, anything
// else as YAML; both reject keys other than oldSlug and newSlug.
func ParseMappings(raw []byte) ([]PageMapping, error) {
	var (
		mappings []PageMapping
		err      error
	)
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		mappings, err = parseJSONMappings(trimmed)
	} else {
		mappings, err = parseYAMLMappings(raw)
	}
	if err != nil {
		return nil, err
	}

	for i, m := range mappings {
		if m.OldSlug == "" || m.NewSlug == "" {
			return nil, fmt.Errorf("mapping entry %d needs both oldSlug and newSlug, got %+v", i, m)
		}
	}

	return mappings, nil
}

// encoding/json matches field names case-insensitively, even with DisallowUnknownFields, so keys
// are checked by hand.
func parseJSONMappings(raw []byte) ([]PageMapping, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))

	var entries []map[string]json.RawMessage
	if err := decoder.Decode(&entries); err != nil {
		return nil, fmt.Errorf("couldn't parse mapping: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("couldn't parse mapping: unexpected data after the list")
	}

	mappings := make([]PageMapping, 0, len(entries))
	for i, entry := range entries {
		var m PageMapping
		for key, value := range entry {
			var target *string
			switch key {
			case "oldSlug":
				target = &m.OldSlug
			case "newSlug":
				target = &m.NewSlug
			default:
				return nil, fmt.Errorf("mapping entry %d: unknown field %q", i, key)
			}
			if err := json.Unmarshal(value, target); err != nil {
				return nil, fmt.Errorf("mapping entry %d: %s must be a string: %w", i, key, err)
			}
		}
		mappings = append(mappings, m)
	}

	return mappings, nil
}

func parseYAMLMappings(raw []byte) ([]PageMapping, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	// Catch typos like "oldslug" rather than silently migrating nothing.
	decoder.KnownFields(true)

	var mappings []PageMapping
	if err := decoder.Decode(&mappings); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("mapping is empty")
		}
		return nil, fmt.Errorf("couldn't parse mapping: %w", err)
	}

	return mappings, nil
}
