package resolve

import (
	"fmt"
	"strings"

	"github.com/fbkclanna/nupin/internal/semver"
)

// ConflictReport renders every conflict in the resolution as a diagnostic
// message. An empty string means no conflicts. The error return covers one
// contract violation only: a conflict requester claiming to be defined by a
// package that is not pinned to a specific version.
func (r *Resolution) ConflictReport() (string, error) {
	var blocks []string
	for _, name := range r.names {
		e := r.entries[name]
		if e.Conflict == nil {
			continue
		}
		first, err := describeRequester(e.Conflict.First)
		if err != nil {
			return "", err
		}
		second, err := describeRequester(e.Conflict.Second)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, first, second)
	}
	return strings.Join(blocks, "\n"), nil
}

func describeRequester(s DependencySource) (string, error) {
	definer := "Dependencies file"
	if s.DefiningPackage != "" {
		if s.DefiningVersion.Kind != semver.Specific {
			return "", fmt.Errorf("requester %s is not pinned to a specific version", s.DefiningPackage)
		}
		definer = s.DefiningPackage + " " + s.DefiningVersion.Lower.String()
	}
	return fmt.Sprintf("%s depends on\n  %s (%s)", definer, s.Requirement.Name, s.Requirement.Range), nil
}
