// Package roster loads the organization's creator roster from YAML.
// The roster is static configuration: loaded once, validated, never mutated
// by the pipeline.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bigtalents/featured/internal/content"
)

type rosterFile struct {
	Creators []content.Creator `yaml:"creators"`
}

// Load reads and validates a roster YAML file.
func Load(path string) ([]content.Creator, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied config
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates roster YAML.
func Parse(data []byte) ([]content.Creator, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if err := validate(file.Creators); err != nil {
		return nil, err
	}
	return file.Creators, nil
}

func validate(creators []content.Creator) error {
	seen := make(map[string]bool, len(creators))
	for i, c := range creators {
		if c.ID == "" {
			return fmt.Errorf("creator %d: missing id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("creator %q: duplicate id", c.ID)
		}
		seen[c.ID] = true

		if c.Name == "" {
			return fmt.Errorf("creator %q: missing name", c.ID)
		}
		if !c.Tier.Valid() {
			return fmt.Errorf("creator %q: unknown tier %q", c.ID, c.Tier)
		}
		if len(c.Platforms) == 0 {
			return fmt.Errorf("creator %q: no platforms configured", c.ID)
		}
		for platform, profile := range c.Platforms {
			if !knownPlatform(platform) {
				return fmt.Errorf("creator %q: unknown platform %q", c.ID, platform)
			}
			if profile.Handle == "" {
				return fmt.Errorf("creator %q: missing %s handle", c.ID, platform)
			}
			if profile.Followers < 0 {
				return fmt.Errorf("creator %q: negative %s follower count", c.ID, platform)
			}
		}
	}
	return nil
}

func knownPlatform(p content.Platform) bool {
	for _, known := range content.Platforms {
		if p == known {
			return true
		}
	}
	return false
}
