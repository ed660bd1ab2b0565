package nuget

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

type nuspecDependency struct {
	ID      string `xml:"id,attr"`
	Version string `xml:"version,attr"`
}

type nuspecFile struct {
	Metadata struct {
		Dependencies struct {
			Dependency []nuspecDependency `xml:"dependency"`
			Group      []struct {
				Dependency []nuspecDependency `xml:"dependency"`
			} `xml:"group"`
		} `xml:"dependencies"`
	} `xml:"metadata"`
}

// parseNuspec extracts the declared dependencies from nuspec XML. Flat
// dependencies come first, then grouped ones in document order; a package
// appearing in several framework groups is only recorded once.
func parseNuspec(data []byte) ([]lock.Dependency, error) {
	var spec nuspecFile
	if err := xml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing nuspec: %w", err)
	}

	flat := spec.Metadata.Dependencies.Dependency
	for _, g := range spec.Metadata.Dependencies.Group {
		flat = append(flat, g.Dependency...)
	}

	var deps []lock.Dependency
	seen := make(map[string]bool)
	for _, d := range flat {
		key := strings.ToLower(d.ID)
		if d.ID == "" || seen[key] {
			continue
		}
		seen[key] = true
		r, err := parseNugetRange(d.Version)
		if err != nil {
			return nil, fmt.Errorf("dependency %s: %w", d.ID, err)
		}
		deps = append(deps, lock.Dependency{Name: d.ID, Range: r})
	}
	return deps, nil
}

// parseNugetRange parses NuGet's interval notation for dependency version
// attributes. A bare version means "that version or higher"; brackets and
// parentheses mark inclusive and exclusive bounds.
//
//	""          any version
//	"1.0"       1.0 <= x
//	"[1.0]"     x == 1.0
//	"[1.0,2.0)" 1.0 <= x < 2.0
//	"(1.0,)"    1.0 < x
//	"(,2.0]"    x <= 2.0
func parseNugetRange(s string) (semver.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return semver.Any(), nil
	}

	if !strings.HasPrefix(s, "[") && !strings.HasPrefix(s, "(") {
		v, err := semver.Parse(s)
		if err != nil {
			return semver.Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		return semver.AtLeast(v), nil
	}

	if len(s) < 2 {
		return semver.Range{}, fmt.Errorf("malformed version range %q", s)
	}
	includeLower := s[0] == '['
	includeUpper := s[len(s)-1] == ']'
	inner := s[1 : len(s)-1]

	lowerText, upperText, hasComma := strings.Cut(inner, ",")
	lowerText = strings.TrimSpace(lowerText)
	upperText = strings.TrimSpace(upperText)

	// "[1.0]" pins the exact version.
	if !hasComma {
		v, err := semver.Parse(lowerText)
		if err != nil {
			return semver.Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		return semver.Exactly(v), nil
	}

	switch {
	case lowerText != "" && upperText != "":
		lo, err := semver.Parse(lowerText)
		if err != nil {
			return semver.Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		hi, err := semver.Parse(upperText)
		if err != nil {
			return semver.Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		return semver.InBetween(includeLower, lo, hi, includeUpper), nil
	case lowerText != "":
		lo, err := semver.Parse(lowerText)
		if err != nil {
			return semver.Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		// The range model has no strictly-greater shape; "(1.0,)" widens
		// to ">= 1.0".
		return semver.AtLeast(lo), nil
	case upperText != "":
		hi, err := semver.Parse(upperText)
		if err != nil {
			return semver.Range{}, fmt.Errorf("version range %q: %w", s, err)
		}
		return semver.InBetween(true, semver.MustParse("0"), hi, includeUpper), nil
	default:
		return semver.Any(), nil
	}
}
