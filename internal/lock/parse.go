package lock

import (
	"fmt"
	"os"
	"strings"

	"github.com/fbkclanna/nupin/internal/semver"
)

// lineKind classifies one lock-file line. Classification happens in a fixed
// priority order: section headers and structural keywords win over the
// indentation check, and only a line indented exactly six spaces counts as
// a dependency line. Entry lines (packages, source files) are whatever is
// left, disambiguated by the current section.
type lineKind int

const (
	lineSection lineKind = iota
	lineBlank
	lineRemote
	lineSpecs
	lineDependency
	lineEntry
)

func classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "NUGET" || trimmed == "GITHUB":
		return lineSection
	case trimmed == "":
		return lineBlank
	case strings.HasPrefix(trimmed, "remote:"):
		return lineRemote
	case strings.HasPrefix(trimmed, "specs:"):
		return lineSpecs
	case leadingSpaces(line) == 6:
		return lineDependency
	default:
		return lineEntry
	}
}

func leadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// parseState is the fold state threaded through the lines of a lock file.
// It only lives for the duration of a Parse call.
type parseState struct {
	repoType string // "NUGET" or "GITHUB", empty before the first header
	remote   string
	packages []Package
	files    []SourceFile
}

// Load reads and parses a nupin.lock file.
func Load(path string) ([]Package, []SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading lock file: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return Parse(strings.Split(text, "\n"))
}

// Parse rebuilds packages and source files from lock-file lines. Lines must
// be in file order with separators already stripped. Any malformed line
// aborts the whole parse; no partial result is returned.
func Parse(lines []string) ([]Package, []SourceFile, error) {
	var st parseState
	for i, line := range lines {
		if err := st.consume(line); err != nil {
			return nil, nil, fmt.Errorf("lock file line %d: %w", i+1, err)
		}
	}
	return st.packages, st.files, nil
}

func (st *parseState) consume(line string) error {
	switch classify(line) {
	case lineSection:
		st.repoType = strings.TrimSpace(line)
	case lineBlank, lineSpecs:
		// no-op
	case lineRemote:
		trimmed := strings.TrimSpace(line)
		st.remote = strings.TrimSpace(strings.TrimPrefix(trimmed, "remote:"))
	case lineDependency:
		return st.addDependency(line)
	default:
		switch st.repoType {
		case "NUGET":
			return st.addPackage(line)
		case "GITHUB":
			return st.addSourceFile(line)
		default:
			return fmt.Errorf("unknown lock file format: %q", strings.TrimSpace(line))
		}
	}
	return nil
}

// addDependency attaches a dependency to the most recently parsed package.
// The lock format stores only a bare version text for transitive
// dependencies, so the recorded constraint is always open; the pinned
// version on the dependency's own package line is what matters.
func (st *parseState) addDependency(line string) error {
	trimmed := strings.TrimSpace(line)
	if len(st.packages) == 0 {
		return fmt.Errorf("dependency %q appears before any package", trimmed)
	}
	name, _, ok := strings.Cut(trimmed, "(")
	if !ok {
		return fmt.Errorf("malformed dependency line %q", trimmed)
	}
	pkg := &st.packages[len(st.packages)-1]
	pkg.Dependencies = append(pkg.Dependencies, Dependency{
		Name:  strings.TrimSpace(name),
		Range: semver.Any(),
	})
	return nil
}

func (st *parseState) addPackage(line string) error {
	trimmed := strings.TrimSpace(line)
	if st.remote == "" {
		return fmt.Errorf("package %q appears before any remote", trimmed)
	}
	fields := strings.Fields(trimmed)
	if len(fields) != 2 {
		return fmt.Errorf("malformed package line %q", trimmed)
	}
	version, err := semver.Parse(stripParens(fields[1]))
	if err != nil {
		return fmt.Errorf("package %s: %w", fields[0], err)
	}
	st.packages = append(st.packages, Package{
		Source:  ParseSource(st.remote),
		Name:    fields[0],
		Version: version,
	})
	return nil
}

func (st *parseState) addSourceFile(line string) error {
	trimmed := strings.TrimSpace(line)
	if strings.Count(st.remote, "/") != 1 {
		return fmt.Errorf("remote %q is not an owner/project repository", st.remote)
	}
	owner, project, _ := strings.Cut(st.remote, "/")

	fields := strings.Fields(trimmed)
	file := SourceFile{Owner: owner, Project: project}
	switch len(fields) {
	case 1:
		file.Path = fields[0]
	case 2:
		file.Path = fields[0]
		file.Commit = stripParens(fields[1])
	default:
		return fmt.Errorf("malformed source file line %q", trimmed)
	}
	st.files = append(st.files, file)
	return nil
}

func stripParens(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
}
