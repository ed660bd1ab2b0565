package resolve

import (
	"strings"
	"testing"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

func TestConflictReport_empty(t *testing.T) {
	res := NewResolution()
	res.Set("A", Entry{Package: &lock.Package{Name: "A", Version: semver.MustParse("1.0.0")}})

	report, err := res.ConflictReport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report != "" {
		t.Errorf("report = %q, want empty", report)
	}
}

func TestConflictReport_rootVersusPackage(t *testing.T) {
	definer := lock.Package{Name: "Castle.Windsor", Version: semver.MustParse("2.1.0")}
	res := NewResolution()
	res.Set("Castle.Core", Entry{Conflict: &Conflict{
		First:  FromRoot(Requirement{Name: "Castle.Core", Range: semver.Exactly(semver.MustParse("2.0.0"))}),
		Second: FromPackage(definer, Requirement{Name: "Castle.Core", Range: semver.AtLeast(semver.MustParse("2.1.0"))}),
	}})

	report, err := res.ConflictReport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := strings.Join([]string{
		"Dependencies file depends on",
		"  Castle.Core (2.0.0)",
		"Castle.Windsor 2.1.0 depends on",
		"  Castle.Core (>= 2.1.0)",
	}, "\n")
	if report != want {
		t.Errorf("report =\n%s\nwant:\n%s", report, want)
	}
}

func TestConflictReport_multipleConflicts(t *testing.T) {
	res := NewResolution()
	res.Set("A", Entry{Conflict: &Conflict{
		First:  FromRoot(Requirement{Name: "A", Range: semver.Any()}),
		Second: FromRoot(Requirement{Name: "A", Range: semver.Exactly(semver.MustParse("1.0.0"))}),
	}})
	res.Set("Ok", Entry{Package: &lock.Package{Name: "Ok", Version: semver.MustParse("1.0.0")}})
	res.Set("B", Entry{Conflict: &Conflict{
		First:  FromRoot(Requirement{Name: "B", Range: semver.AtLeast(semver.MustParse("2.0.0"))}),
		Second: FromRoot(Requirement{Name: "B", Range: semver.Exactly(semver.MustParse("1.0.0"))}),
	}})

	report, err := res.ConflictReport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(report, "A (>= 0)") || !strings.Contains(report, "B (>= 2.0.0)") {
		t.Errorf("report missing conflict blocks:\n%s", report)
	}
	if strings.Contains(report, "Ok") {
		t.Errorf("resolved entries must not appear in the report:\n%s", report)
	}
}

// A requester claiming to be defined by an unpinned package is a bug in
// whoever built the resolution.
func TestConflictReport_unpinnedDefiner(t *testing.T) {
	res := NewResolution()
	res.Set("X", Entry{Conflict: &Conflict{
		First: DependencySource{
			DefiningPackage: "Loose",
			DefiningVersion: semver.AtLeast(semver.MustParse("1.0.0")),
			Requirement:     Requirement{Name: "X", Range: semver.Any()},
		},
		Second: FromRoot(Requirement{Name: "X", Range: semver.Any()}),
	}})

	if _, err := res.ConflictReport(); err == nil {
		t.Fatal("expected error for definer without a specific version")
	}
}

func TestResolution_insertionOrder(t *testing.T) {
	res := NewResolution()
	res.Set("B", Entry{Package: &lock.Package{Name: "B", Version: semver.MustParse("1.0.0")}})
	res.Set("A", Entry{Package: &lock.Package{Name: "A", Version: semver.MustParse("1.0.0")}})
	res.Set("B", Entry{Package: &lock.Package{Name: "B", Version: semver.MustParse("2.0.0")}})

	names := res.Names()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("names = %v, want [B A]", names)
	}
	packages, err := res.Packages()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if packages[0].Version.String() != "2.0.0" {
		t.Errorf("replaced entry not visible: %+v", packages[0])
	}
}
