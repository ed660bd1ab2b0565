package lock

import (
	"strings"

	"github.com/fbkclanna/nupin/internal/semver"
)

// SourceKind discriminates where a package group comes from.
type SourceKind int

const (
	// Nuget is a remote feed reached over HTTP.
	Nuget SourceKind = iota
	// LocalNuget is a feed directory on the local filesystem.
	LocalNuget
)

// Source identifies the remote a package belongs to. Packages sharing a
// Source are grouped under one remote: block in the lock file.
type Source struct {
	Kind     SourceKind
	Location string
}

// ParseSource classifies a remote string from a lock file or manifest.
// HTTP(S) URLs are remote feeds; anything else is a local feed path.
func ParseSource(remote string) Source {
	if strings.HasPrefix(remote, "http://") || strings.HasPrefix(remote, "https://") {
		return Source{Kind: Nuget, Location: remote}
	}
	return Source{Kind: LocalNuget, Location: remote}
}

func (s Source) String() string { return s.Location }

// Dependency is a direct dependency declared by a resolved package.
type Dependency struct {
	Name  string
	Range semver.Range
}

// Package is one package pinned by resolution. Dependencies keeps the
// order in which they were declared.
type Package struct {
	Source       Source
	Name         string
	Version      semver.Version
	Dependencies []Dependency
}

// SourceFile is a single file fetched from a source-controlled repository
// rather than a package feed. Commit is empty when the file is not pinned.
type SourceFile struct {
	Owner   string
	Project string
	Path    string
	Commit  string
}

// Repo returns the owner/project identifier the file is grouped under.
func (f SourceFile) Repo() string { return f.Owner + "/" + f.Project }
