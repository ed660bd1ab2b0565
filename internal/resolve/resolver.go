package resolve

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

// Index lists the versions and declared dependencies a source can provide.
// Versions returns an empty slice, not an error, when a source simply does
// not carry the package.
type Index interface {
	Versions(source lock.Source, name string) ([]semver.Version, error)
	Dependencies(source lock.Source, name string, version semver.Version) ([]lock.Dependency, error)
}

// Resolver pins requirements against an ordered list of sources.
//
// Resolution is first-come: a requirement pins the highest version its
// range accepts from the first source that carries the package, and a later
// requirement whose range rejects an already-pinned version turns that
// entry into a conflict between the original requester and the new one.
type Resolver struct {
	Index   Index
	Sources []lock.Source
}

// Resolve pins the given root requirements and, transitively, everything
// they depend on. Conflicts are recorded in the resolution, not returned as
// errors; a package no source carries is an error.
func (r *Resolver) Resolve(reqs []Requirement) (*Resolution, error) {
	res := NewResolution()
	pinners := make(map[string]DependencySource)

	queue := make([]DependencySource, 0, len(reqs))
	for _, req := range reqs {
		queue = append(queue, FromRoot(req))
	}

	for len(queue) > 0 {
		requester := queue[0]
		queue = queue[1:]
		name := requester.Requirement.Name

		if e, ok := res.Get(name); ok {
			if e.Conflict != nil {
				continue
			}
			if requester.Requirement.Range.Matches(e.Package.Version) {
				continue
			}
			log.Debugf("conflict on %s: pinned %s, %q rejected", name, e.Package.Version, requester.Requirement.Range)
			res.Set(name, Entry{Conflict: &Conflict{First: pinners[name], Second: requester}})
			continue
		}

		pkg, err := r.pin(requester.Requirement)
		if err != nil {
			return nil, err
		}
		res.Set(name, Entry{Package: pkg})
		pinners[name] = requester

		for _, d := range pkg.Dependencies {
			queue = append(queue, FromPackage(*pkg, Requirement{Name: d.Name, Range: d.Range}))
		}
	}
	return res, nil
}

// pin picks the highest version satisfying the requirement from the first
// source that has one.
func (r *Resolver) pin(req Requirement) (*lock.Package, error) {
	for _, source := range r.Sources {
		versions, err := r.Index.Versions(source, req.Name)
		if err != nil {
			return nil, fmt.Errorf("listing versions of %s from %s: %w", req.Name, source, err)
		}

		var best semver.Version
		for _, v := range versions {
			if req.Range.Matches(v) && (best.IsZero() || v.Compare(best) > 0) {
				best = v
			}
		}
		if best.IsZero() {
			continue
		}

		deps, err := r.Index.Dependencies(source, req.Name, best)
		if err != nil {
			return nil, fmt.Errorf("reading dependencies of %s %s: %w", req.Name, best, err)
		}
		log.Debugf("pinned %s %s from %s", req.Name, best, source)
		return &lock.Package{Source: source, Name: req.Name, Version: best, Dependencies: deps}, nil
	}
	return nil, fmt.Errorf("no source provides %s (%s)", req.Name, req.Range)
}
