package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceManifest declares the sources of a pipeline run
type SourceManifest struct {
	Sources []SourceEntry `yaml:"sources"`
}

type SourceEntry struct {
	Connector string `yaml:"connector"`
	Location  string `yaml:"location"`
}

// LoadSources reads a YAML source manifest from path
func LoadSources(path string) (*SourceManifest, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source manifest: %w", err)
	}

	manifest := &SourceManifest{}
	if err := yaml.Unmarshal(file, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse source manifest: %w", err)
	}

	for i, entry := range manifest.Sources {
		if entry.Connector == "" || entry.Location == "" {
			return nil, fmt.Errorf("source %d: connector and location are required", i)
		}
	}

	return manifest, nil
}
