package workspace

import (
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/nupin/internal/git"
	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/manifest"
	"github.com/fbkclanna/nupin/internal/nuget"
	"github.com/fbkclanna/nupin/internal/resolve"
)

// ManifestName and LockName are the well-known file names within a project
// directory.
const (
	ManifestName = "nupin.yaml"
	LockName     = "nupin.lock"
)

// Context holds the resolved paths and loaded config for a project.
type Context struct {
	Root         string
	ManifestPath string
	LockPath     string
	Manifest     *manifest.Manifest

	// Index answers version and dependency queries during resolution.
	Index *nuget.Client

	// PinCommit discovers the commit to pin for files listed without one.
	// Defaults to querying the repository's HEAD with git ls-remote; a
	// failure leaves the file unpinned rather than aborting the update.
	PinCommit func(repo string) (string, error)
}

// Load resolves project paths and loads the manifest.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	manifestPath := filepath.Join(root, ManifestName)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:         root,
		ManifestPath: manifestPath,
		LockPath:     filepath.Join(root, LockName),
		Manifest:     m,
		Index:        nuget.NewClient(),
		PinCommit: func(repo string) (string, error) {
			return git.LsRemoteHead(git.RepoURL(repo))
		},
	}, nil
}

// Create resolves the manifest's requirements, returning the resolution
// and the requested source files with commits pinned where possible.
// Nothing is written to disk.
func (c *Context) Create(force bool) (*resolve.Resolution, []lock.SourceFile, error) {
	if force {
		c.Index.Invalidate()
	}

	resolver := &resolve.Resolver{Index: c.Index, Sources: c.Manifest.SourceList()}
	res, err := resolver.Resolve(c.Manifest.Requirements())
	if err != nil {
		return nil, nil, err
	}

	files := c.Manifest.SourceFiles()
	for i := range files {
		if files[i].Commit != "" {
			continue
		}
		commit, err := c.PinCommit(files[i].Repo())
		if err != nil {
			log.Warnf("could not pin %s %s: %v", files[i].Repo(), files[i].Path, err)
			continue
		}
		files[i].Commit = commit
	}

	return res, files, nil
}

// Update resolves and overwrites the lock file. When the resolution holds
// conflicts the lock file is left untouched and the returned error carries
// the full conflict report.
func (c *Context) Update(force bool) ([]lock.Package, []lock.SourceFile, error) {
	res, files, err := c.Create(force)
	if err != nil {
		return nil, nil, err
	}

	report, err := res.ConflictReport()
	if err != nil {
		return nil, nil, err
	}
	if report != "" {
		return nil, nil, fmt.Errorf("could not resolve dependencies:\n%s", report)
	}

	packages, err := res.Packages()
	if err != nil {
		return nil, nil, err
	}
	if err := lock.Save(c.LockPath, packages, files); err != nil {
		return nil, nil, err
	}
	return packages, files, nil
}
