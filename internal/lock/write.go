package lock

import (
	"fmt"
	"os"
	"strings"
)

// Write renders packages and source files in canonical lock-file form:
// the NUGET section first, then GITHUB, joined without blank lines. The
// output always ends with a newline; Parse treats the resulting final
// blank line as a no-op, so Write and Parse round-trip.
func Write(packages []Package, files []SourceFile) string {
	return writePackages(packages) + "\n" + writeSourceFiles(files) + "\n"
}

// Save overwrites the lock file at path with the canonical rendering.
func Save(path string, packages []Package, files []SourceFile) error {
	if err := os.WriteFile(path, []byte(Write(packages, files)), 0644); err != nil { //nolint:gosec // lock file needs to be readable
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}

// writePackages renders the NUGET section. Packages are grouped by source
// in first-encounter order; within a group they keep their given order, and
// each package's dependencies keep their declared order.
func writePackages(packages []Package) string {
	var order []Source
	groups := make(map[Source][]Package)
	for _, p := range packages {
		if _, ok := groups[p.Source]; !ok {
			order = append(order, p.Source)
		}
		groups[p.Source] = append(groups[p.Source], p)
	}

	lines := []string{"NUGET"}
	for _, src := range order {
		lines = append(lines, "  remote: "+src.String(), "  specs:")
		for _, p := range groups[src] {
			lines = append(lines, fmt.Sprintf("    %s (%s)", p.Name, p.Version))
			for _, d := range p.Dependencies {
				lines = append(lines, fmt.Sprintf("      %s (%s)", d.Name, d.Range))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// writeSourceFiles renders the GITHUB section, grouped by owner/project in
// first-encounter order. Paths lose any leading slash on the way out.
func writeSourceFiles(files []SourceFile) string {
	var order []string
	groups := make(map[string][]SourceFile)
	for _, f := range files {
		repo := f.Repo()
		if _, ok := groups[repo]; !ok {
			order = append(order, repo)
		}
		groups[repo] = append(groups[repo], f)
	}

	lines := []string{"GITHUB"}
	for _, repo := range order {
		lines = append(lines, "  remote: "+repo, "  specs:")
		for _, f := range groups[repo] {
			path := strings.TrimPrefix(f.Path, "/")
			if f.Commit != "" {
				lines = append(lines, fmt.Sprintf("    %s (%s)", path, f.Commit))
			} else {
				lines = append(lines, "    "+path)
			}
		}
	}
	return strings.Join(lines, "\n")
}
