// Package semver provides the version and version-range values used by
// package resolution and the lock file. Ordering and validity checks are
// delegated to golang.org/x/mod/semver; the original spelling of a version
// is preserved so lock files round-trip byte for byte.
package semver

import (
	"fmt"
	"strings"

	gosemver "golang.org/x/mod/semver"
)

// Version is a parsed semantic version.
type Version struct {
	raw   string
	canon string
}

// Parse parses a version string such as "6.0.8". A leading "v" is accepted
// but not required; NuGet feeds publish versions without it.
func Parse(s string) (Version, error) {
	c := s
	if !strings.HasPrefix(c, "v") {
		c = "v" + c
	}
	if !gosemver.IsValid(c) {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	return Version{raw: s, canon: c}, nil
}

// MustParse parses a version and panics on error. For tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as originally written.
func (v Version) String() string { return v.raw }

// IsZero reports whether v is the zero Version (not a parsed one).
func (v Version) IsZero() bool { return v.raw == "" }

// Compare returns -1, 0, or +1 depending on whether v is lower than, equal
// to, or higher than o. Spellings that canonicalize equally ("1.2" and
// "1.2.0") compare as equal.
func (v Version) Compare(o Version) int {
	return gosemver.Compare(v.canon, o.canon)
}
