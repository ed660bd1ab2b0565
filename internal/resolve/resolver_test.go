package resolve

import (
	"testing"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
	"github.com/fbkclanna/nupin/internal/testutil"
)

var feedSource = lock.Source{Kind: lock.Nuget, Location: "https://feed.example/v3"}

func newResolver(packages map[string][]testutil.PackageSpec) *Resolver {
	return &Resolver{
		Index:   &testutil.StaticIndex{Packages: map[string]map[string][]testutil.PackageSpec{feedSource.Location: packages}},
		Sources: []lock.Source{feedSource},
	}
}

func req(name, constraint string) Requirement {
	r, err := semver.ParseRange(constraint)
	if err != nil {
		panic(err)
	}
	return Requirement{Name: name, Range: r}
}

func TestResolve_picksHighestSatisfying(t *testing.T) {
	r := newResolver(map[string][]testutil.PackageSpec{
		"Newtonsoft.Json": {{Version: "6.0.8"}, {Version: "13.0.1"}, {Version: "12.0.3"}},
	})

	res, err := r.Resolve([]Requirement{req("Newtonsoft.Json", ">= 6.0 < 13.0")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := res.Get("Newtonsoft.Json")
	if !ok || e.Package == nil {
		t.Fatalf("entry = %+v", e)
	}
	if e.Package.Version.String() != "12.0.3" {
		t.Errorf("pinned %s, want 12.0.3", e.Package.Version)
	}
}

func TestResolve_transitive(t *testing.T) {
	r := newResolver(map[string][]testutil.PackageSpec{
		"Castle.Windsor": {{Version: "2.1.0", Deps: []testutil.DepSpec{
			{Name: "Castle.Core", Constraint: ">= 2.1.0"},
		}}},
		"Castle.Core": {{Version: "2.1.0"}, {Version: "2.2.0"}},
	})

	res, err := r.Resolve([]Requirement{req("Castle.Windsor", "")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Len() != 2 {
		t.Fatalf("resolved %d packages, want 2", res.Len())
	}
	core, _ := res.Get("Castle.Core")
	if core.Package == nil || core.Package.Version.String() != "2.2.0" {
		t.Errorf("Castle.Core entry = %+v", core)
	}
	// Insertion order: requesters before their dependencies.
	names := res.Names()
	if names[0] != "Castle.Windsor" || names[1] != "Castle.Core" {
		t.Errorf("names = %v", names)
	}
}

func TestResolve_conflict(t *testing.T) {
	r := newResolver(map[string][]testutil.PackageSpec{
		"A": {{Version: "1.0.0", Deps: []testutil.DepSpec{{Name: "C", Constraint: "= 1.0.0"}}}},
		"B": {{Version: "1.0.0", Deps: []testutil.DepSpec{{Name: "C", Constraint: "= 2.0.0"}}}},
		"C": {{Version: "1.0.0"}, {Version: "2.0.0"}},
	})

	res, err := r.Resolve([]Requirement{req("A", ""), req("B", "")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := res.Get("C")
	if e.Conflict == nil {
		t.Fatalf("expected conflict on C, got %+v", e)
	}
	if e.Conflict.First.DefiningPackage != "A" || e.Conflict.Second.DefiningPackage != "B" {
		t.Errorf("conflict requesters = %q, %q", e.Conflict.First.DefiningPackage, e.Conflict.Second.DefiningPackage)
	}
	if _, err := res.Packages(); err == nil {
		t.Error("Packages() should refuse a resolution holding a conflict")
	}
}

func TestResolve_compatibleRequirementsShareOnePin(t *testing.T) {
	r := newResolver(map[string][]testutil.PackageSpec{
		"A": {{Version: "1.0.0", Deps: []testutil.DepSpec{{Name: "C", Constraint: ">= 1.0"}}}},
		"B": {{Version: "1.0.0", Deps: []testutil.DepSpec{{Name: "C", Constraint: ">= 1.5"}}}},
		"C": {{Version: "1.8.0"}},
	})

	res, err := r.Resolve([]Requirement{req("A", ""), req("B", "")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := res.Get("C")
	if e.Package == nil || e.Package.Version.String() != "1.8.0" {
		t.Errorf("C entry = %+v", e)
	}
}

func TestResolve_unknownPackage(t *testing.T) {
	r := newResolver(nil)
	if _, err := r.Resolve([]Requirement{req("Ghost", "")}); err == nil {
		t.Fatal("expected error for package no source provides")
	}
}

func TestResolve_sourceOrderWins(t *testing.T) {
	second := lock.Source{Kind: lock.LocalNuget, Location: "./feed"}
	ix := &testutil.StaticIndex{Packages: map[string]map[string][]testutil.PackageSpec{
		feedSource.Location: {"A": {{Version: "1.0.0"}}},
		second.Location:     {"A": {{Version: "9.0.0"}}},
	}}
	r := &Resolver{Index: ix, Sources: []lock.Source{feedSource, second}}

	res, err := r.Resolve([]Requirement{req("A", "")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, _ := res.Get("A")
	if e.Package.Source != feedSource {
		t.Errorf("source = %+v, want first-listed feed", e.Package.Source)
	}
	if e.Package.Version.String() != "1.0.0" {
		t.Errorf("version = %s, want the first source's best", e.Package.Version)
	}
}
