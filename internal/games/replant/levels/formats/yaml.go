// Package formats provides pluggable level pack file format parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPack is returned for a manifest without levels.
var ErrEmptyPack = errors.New("pack has no levels")

// YAMLPack represents the YAML structure for a pack manifest.
type YAMLPack struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Author string      `yaml:"author,omitempty"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel is one level entry. Exactly one of Map and File is set:
// Map holds the level text inline, File names a text file relative to the
// manifest.
//
// Inline maps whose first row starts with spaces need a block indentation
// indicator (map: |2) so YAML keeps the leading columns.
type YAMLLevel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Hint string `yaml:"hint,omitempty"`
	Map  string `yaml:"map,omitempty"`
	File string `yaml:"file,omitempty"`
}

// Pack represents a parsed pack ready for level parsing.
type Pack struct {
	ID     string
	Name   string
	Author string
	Levels []Level
}

// Level is one raw level entry.
type Level struct {
	ID   string
	Name string
	Hint string
	Text string // level text, empty when File is set
	File string
}

// ParseYAML parses a YAML pack manifest.
func ParseYAML(data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yp.ID == "" {
		return Pack{}, errors.New("pack id is required")
	}
	if len(yp.Levels) == 0 {
		return Pack{}, fmt.Errorf("pack %s: %w", yp.ID, ErrEmptyPack)
	}

	pack := Pack{
		ID:     yp.ID,
		Name:   yp.Name,
		Author: yp.Author,
	}
	if pack.Name == "" {
		pack.Name = yp.ID
	}

	seen := make(map[string]bool, len(yp.Levels))
	for i, yl := range yp.Levels {
		id := yl.ID
		if id == "" {
			id = fmt.Sprintf("%02d", i+1)
		}
		if seen[id] {
			return Pack{}, fmt.Errorf("pack %s: duplicate level id %q", yp.ID, id)
		}
		seen[id] = true

		switch {
		case yl.Map != "" && yl.File != "":
			return Pack{}, fmt.Errorf("pack %s: level %s sets both map and file", yp.ID, id)
		case yl.Map == "" && yl.File == "":
			return Pack{}, fmt.Errorf("pack %s: level %s has no map", yp.ID, id)
		}

		name := yl.Name
		if name == "" {
			name = id
		}
		pack.Levels = append(pack.Levels, Level{
			ID:   id,
			Name: name,
			Hint: yl.Hint,
			Text: yl.Map,
			File: yl.File,
		})
	}
	return pack, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}

// IsManifest reports whether ext is a pack manifest extension.
func IsManifest(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
