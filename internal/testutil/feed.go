package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

// DepSpec is one declared dependency in a test package.
type DepSpec struct {
	Name       string
	Constraint string // semver.ParseRange syntax
}

// PackageSpec is one available version of a test package.
type PackageSpec struct {
	Version string
	Deps    []DepSpec
}

// StaticIndex is an in-memory package index for resolver tests, keyed by
// source location and package name.
type StaticIndex struct {
	Packages map[string]map[string][]PackageSpec
}

// Versions implements the resolver's Index contract.
func (ix *StaticIndex) Versions(source lock.Source, name string) ([]semver.Version, error) {
	var versions []semver.Version
	for _, spec := range ix.Packages[source.Location][name] {
		versions = append(versions, semver.MustParse(spec.Version))
	}
	return versions, nil
}

// Dependencies implements the resolver's Index contract.
func (ix *StaticIndex) Dependencies(source lock.Source, name string, version semver.Version) ([]lock.Dependency, error) {
	for _, spec := range ix.Packages[source.Location][name] {
		if spec.Version != version.String() {
			continue
		}
		var deps []lock.Dependency
		for _, d := range spec.Deps {
			r, err := semver.ParseRange(d.Constraint)
			if err != nil {
				return nil, err
			}
			deps = append(deps, lock.Dependency{Name: d.Name, Range: r})
		}
		return deps, nil
	}
	return nil, fmt.Errorf("no %s %s in static index", name, version)
}

// CreateLocalFeed creates a temp directory holding .nupkg archives for the
// given packages and returns its path.
func CreateLocalFeed(t *testing.T, packages map[string][]PackageSpec) string {
	t.Helper()
	dir := t.TempDir()
	for name, specs := range packages {
		for _, spec := range specs {
			WriteNupkg(t, dir, name, spec)
		}
	}
	return dir
}

// WriteNupkg writes a minimal {id}.{version}.nupkg archive containing only
// the nuspec.
func WriteNupkg(t *testing.T, dir, name string, spec PackageSpec) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name + ".nuspec")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(Nuspec(name, spec))); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.%s.nupkg", name, spec.Version))
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// Nuspec renders nuspec XML for a test package. Constraints are written in
// NuGet interval notation where the ParseRange syntax differs.
func Nuspec(name string, spec PackageSpec) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<package>\n  <metadata>\n")
	fmt.Fprintf(&b, "    <id>%s</id>\n    <version>%s</version>\n", name, spec.Version)
	if len(spec.Deps) > 0 {
		b.WriteString("    <dependencies>\n")
		for _, d := range spec.Deps {
			fmt.Fprintf(&b, "      <dependency id=%q version=%q />\n", d.Name, nugetNotation(d.Constraint))
		}
		b.WriteString("    </dependencies>\n")
	}
	b.WriteString("  </metadata>\n</package>\n")
	return b.String()
}

func nugetNotation(constraint string) string {
	fields := strings.Fields(constraint)
	switch {
	case len(fields) == 0:
		return ""
	case fields[0] == "=":
		return "[" + fields[1] + "]"
	case len(fields) == 4: // ">= lo < hi"
		return "[" + fields[1] + "," + fields[3] + ")"
	case fields[0] == ">=":
		return fields[1]
	default: // bare version pins exactly in ParseRange syntax
		return "[" + fields[0] + "]"
	}
}
