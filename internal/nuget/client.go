package nuget

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

// Client answers version and dependency queries against NuGet sources.
// Responses are cached in memory for the lifetime of the client; Invalidate
// drops the cache so a forced update re-queries every feed.
type Client struct {
	HTTP *http.Client

	mu       sync.Mutex
	versions map[string][]semver.Version
	deps     map[string][]lock.Dependency
}

// NewClient returns a client using the default HTTP transport.
func NewClient() *Client {
	return &Client{HTTP: http.DefaultClient}
}

// Invalidate drops all cached feed responses.
func (c *Client) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions = nil
	c.deps = nil
}

// Versions lists the versions a source carries for a package. A feed that
// does not know the package yields an empty list, not an error.
func (c *Client) Versions(source lock.Source, name string) ([]semver.Version, error) {
	key := source.Location + "|" + strings.ToLower(name)
	c.mu.Lock()
	if cached, ok := c.versions[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var (
		versions []semver.Version
		err      error
	)
	switch source.Kind {
	case lock.LocalNuget:
		versions, err = localVersions(source.Location, name)
	default:
		versions, err = c.remoteVersions(source.Location, name)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.versions == nil {
		c.versions = make(map[string][]semver.Version)
	}
	c.versions[key] = versions
	c.mu.Unlock()
	return versions, nil
}

// Dependencies reads the direct dependencies a package version declares.
func (c *Client) Dependencies(source lock.Source, name string, version semver.Version) ([]lock.Dependency, error) {
	key := source.Location + "|" + strings.ToLower(name) + "|" + version.String()
	c.mu.Lock()
	if cached, ok := c.deps[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var (
		deps []lock.Dependency
		err  error
	)
	switch source.Kind {
	case lock.LocalNuget:
		deps, err = localDependencies(source.Location, name, version)
	default:
		deps, err = c.remoteDependencies(source.Location, name, version)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.deps == nil {
		c.deps = make(map[string][]lock.Dependency)
	}
	c.deps[key] = deps
	c.mu.Unlock()
	return deps, nil
}

// remoteVersions queries the flat-container version index:
// {base}/{id}/index.json with the package id lowercased.
func (c *Client) remoteVersions(base, name string) ([]semver.Version, error) {
	url := fmt.Sprintf("%s/%s/index.json", strings.TrimRight(base, "/"), strings.ToLower(name))
	log.Debugf("GET %s", url)

	resp, err := c.HTTP.Get(url)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", base, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying %s: unexpected status %s", base, resp.Status)
	}

	var payload struct {
		Versions []string `json:"versions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding version index from %s: %w", base, err)
	}

	versions := make([]semver.Version, 0, len(payload.Versions))
	for _, s := range payload.Versions {
		v, err := semver.Parse(s)
		if err != nil {
			log.Debugf("skipping unparsable version %q of %s", s, name)
			continue
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// remoteDependencies fetches and parses the nuspec:
// {base}/{id}/{version}/{id}.nuspec.
func (c *Client) remoteDependencies(base, name string, version semver.Version) ([]lock.Dependency, error) {
	id := strings.ToLower(name)
	url := fmt.Sprintf("%s/%s/%s/%s.nuspec", strings.TrimRight(base, "/"), id, version, id)
	log.Debugf("GET %s", url)

	resp, err := c.HTTP.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching nuspec for %s %s: %w", name, version, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching nuspec for %s %s: unexpected status %s", name, version, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading nuspec for %s %s: %w", name, version, err)
	}
	return parseNuspec(data)
}
