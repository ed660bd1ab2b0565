package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fbkclanna/nupin/internal/semver"
)

// Save validates and writes a manifest to disk.
func Save(path string, m *Manifest) error {
	if err := validate(m); err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // manifest file needs to be readable
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Load reads and validates a nupin.yaml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates nupin.yaml content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validate(m *Manifest) error {
	if m.Version != 1 {
		return fmt.Errorf("unsupported manifest version: %d (expected 1)", m.Version)
	}
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if len(m.Packages) > 0 && len(m.Sources) == 0 {
		return fmt.Errorf("manifest: packages are listed but no sources are configured")
	}

	seen := make(map[string]bool, len(m.Packages))
	for _, p := range m.Packages {
		if p.Name == "" {
			return fmt.Errorf("manifest: package without a name")
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("manifest: package %s listed twice", p.Name)
		}
		seen[key] = true
		if _, err := semver.ParseRange(p.Version); err != nil {
			return fmt.Errorf("manifest: package %s: %w", p.Name, err)
		}
	}

	for _, f := range m.Files {
		if strings.Count(f.Repo, "/") != 1 {
			return fmt.Errorf("manifest: file repo %q must be owner/project", f.Repo)
		}
		if f.Path == "" {
			return fmt.Errorf("manifest: file from %s has no path", f.Repo)
		}
	}
	return nil
}
