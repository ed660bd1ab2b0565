package resolve

import (
	"fmt"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

// Requirement is a named version constraint.
type Requirement struct {
	Name  string
	Range semver.Range
}

// DependencySource records who requested a package: the dependencies
// manifest itself, or a package pinned along the way.
type DependencySource struct {
	// DefiningPackage is empty when the requirement comes from nupin.yaml.
	DefiningPackage string
	// DefiningVersion is the defining package's own version. When
	// DefiningPackage is set it must be a Specific range: a node in a
	// concrete dependency graph is always pinned.
	DefiningVersion semver.Range
	Requirement     Requirement
}

// FromRoot marks a requirement as coming from the dependencies manifest.
func FromRoot(req Requirement) DependencySource {
	return DependencySource{Requirement: req}
}

// FromPackage marks a requirement as declared by a pinned package.
func FromPackage(pkg lock.Package, req Requirement) DependencySource {
	return DependencySource{
		DefiningPackage: pkg.Name,
		DefiningVersion: semver.Exactly(pkg.Version),
		Requirement:     req,
	}
}

// Conflict pairs two requesters whose constraints on the same package name
// cannot both hold.
type Conflict struct {
	First  DependencySource
	Second DependencySource
}

// Entry is the resolution outcome for one package name. Exactly one of
// Package and Conflict is set.
type Entry struct {
	Package  *lock.Package
	Conflict *Conflict
}

// Resolution maps package names to entries. Insertion order is preserved
// so that serialization groups sources deterministically.
type Resolution struct {
	names   []string
	entries map[string]Entry
}

// NewResolution returns an empty resolution.
func NewResolution() *Resolution {
	return &Resolution{entries: make(map[string]Entry)}
}

// Set records the entry for a name, replacing any previous one. Names keep
// their first-insertion position.
func (r *Resolution) Set(name string, e Entry) {
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = e
}

// Get returns the entry for a name.
func (r *Resolution) Get(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns the package names in insertion order.
func (r *Resolution) Names() []string { return r.names }

// Len returns the number of entries.
func (r *Resolution) Len() int { return len(r.names) }

// Packages projects all entries to their pinned packages in insertion
// order. Hitting a conflict here is a caller bug: the conflict report must
// be checked before serializing.
func (r *Resolution) Packages() ([]lock.Package, error) {
	packages := make([]lock.Package, 0, len(r.names))
	for _, name := range r.names {
		e := r.entries[name]
		if e.Package == nil {
			return nil, fmt.Errorf("resolution for %s holds a conflict, not a package", name)
		}
		packages = append(packages, *e.Package)
	}
	return packages, nil
}
