package nuget

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

// localVersions lists versions from a feed directory holding files named
// {id}.{version}.nupkg. Package ids match case-insensitively, like NuGet.
func localVersions(dir, name string) ([]semver.Version, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading local feed %s: %w", dir, err)
	}

	prefix := strings.ToLower(name) + "."
	var versions []semver.Version
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if !strings.HasPrefix(lower, prefix) || !strings.HasSuffix(lower, ".nupkg") {
			continue
		}
		text := e.Name()[len(prefix) : len(e.Name())-len(".nupkg")]
		v, err := semver.Parse(text)
		if err != nil {
			// Longer package ids sharing the prefix land here; skip them.
			continue
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// localDependencies reads the nuspec embedded in the package's .nupkg.
func localDependencies(dir, name string, version semver.Version) ([]lock.Dependency, error) {
	path, err := findNupkg(dir, name, version)
	if err != nil {
		return nil, err
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = archive.Close() }()

	for _, f := range archive.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".nuspec") || strings.Contains(f.Name, "/") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("reading nuspec in %s: %w", path, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading nuspec in %s: %w", path, err)
		}
		return parseNuspec(data)
	}
	return nil, fmt.Errorf("no nuspec found in %s", path)
}

// findNupkg locates the archive for a version, tolerating case differences
// in the package id part of the file name.
func findNupkg(dir, name string, version semver.Version) (string, error) {
	exact := filepath.Join(dir, fmt.Sprintf("%s.%s.nupkg", name, version))
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading local feed %s: %w", dir, err)
	}
	want := strings.ToLower(fmt.Sprintf("%s.%s.nupkg", name, version))
	for _, e := range entries {
		if strings.ToLower(e.Name()) == want {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("package %s %s not found in %s", name, version, dir)
}
