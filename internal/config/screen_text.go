package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScreenText holds the user-visible labels of the search screen.
type ScreenText struct {
	Placeholder  string `yaml:"placeholder"`
	SeeMore      string `yaml:"see_more"`
	SeeLess      string `yaml:"see_less"`
	NoResults    string `yaml:"no_results"`
	SearchFailed string `yaml:"search_failed"`
}

// DefaultScreenText returns the labels used when no file is configured.
func DefaultScreenText() *ScreenText {
	return &ScreenText{
		Placeholder:  "Search for you meal...",
		SeeMore:      "See more",
		SeeLess:      "See less",
		NoResults:    "No results founds",
		SearchFailed: "Search failed",
	}
}

// LoadScreenText reads a YAML label file. Labels missing from the file
// keep their default value.
func LoadScreenText(path string) (*ScreenText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read screen text file: %w", err)
	}

	text := DefaultScreenText()
	if err := yaml.Unmarshal(data, text); err != nil {
		return nil, fmt.Errorf("failed to parse screen text YAML: %w", err)
	}

	return text, nil
}
