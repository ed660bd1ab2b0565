package manifest

import (
	"strings"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/resolve"
	"github.com/fbkclanna/nupin/internal/semver"
)

// Manifest represents the top-level nupin.yaml dependencies file.
type Manifest struct {
	Version  int       `yaml:"version"`
	Name     string    `yaml:"name"`
	Sources  []string  `yaml:"sources,omitempty"`
	Packages []Package `yaml:"packages,omitempty"`
	Files    []File    `yaml:"files,omitempty"`
}

// Package is a requested NuGet package. Version is a constraint in
// semver.ParseRange syntax; empty means any version.
type Package struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// File is a requested file from a source-controlled repository.
type File struct {
	Repo   string `yaml:"repo"` // owner/project
	Path   string `yaml:"path"`
	Commit string `yaml:"commit,omitempty"`
}

// SourceList returns the manifest's sources as lock sources, in order.
func (m *Manifest) SourceList() []lock.Source {
	sources := make([]lock.Source, 0, len(m.Sources))
	for _, s := range m.Sources {
		sources = append(sources, lock.ParseSource(s))
	}
	return sources
}

// Requirements converts the requested packages to resolver requirements.
// Constraints were validated at parse time, so conversion cannot fail.
func (m *Manifest) Requirements() []resolve.Requirement {
	reqs := make([]resolve.Requirement, 0, len(m.Packages))
	for _, p := range m.Packages {
		r, err := semver.ParseRange(p.Version)
		if err != nil {
			r = semver.Any()
		}
		reqs = append(reqs, resolve.Requirement{Name: p.Name, Range: r})
	}
	return reqs
}

// SourceFiles converts the requested files to lock source files.
func (m *Manifest) SourceFiles() []lock.SourceFile {
	files := make([]lock.SourceFile, 0, len(m.Files))
	for _, f := range m.Files {
		owner, project, _ := strings.Cut(f.Repo, "/")
		files = append(files, lock.SourceFile{
			Owner:   owner,
			Project: project,
			Path:    f.Path,
			Commit:  f.Commit,
		})
	}
	return files
}
