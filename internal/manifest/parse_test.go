package manifest

import (
	"path/filepath"
	"testing"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/semver"
)

func TestParse_valid(t *testing.T) {
	data := []byte(`
version: 1
name: myproject
sources:
  - https://api.nuget.org/v3-flatcontainer
  - ./local-feed
packages:
  - name: Newtonsoft.Json
    version: ">= 13.0"
  - name: Castle.Windsor
files:
  - repo: fsprojects/Paket
    path: src/file.fs
    commit: abc123
  - repo: forki/FsUnit
    path: FsUnit.fs
`)
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "myproject" {
		t.Errorf("name = %q", m.Name)
	}
	if len(m.Packages) != 2 || len(m.Files) != 2 {
		t.Errorf("got %d packages, %d files", len(m.Packages), len(m.Files))
	}

	sources := m.SourceList()
	if sources[0].Kind != lock.Nuget || sources[1].Kind != lock.LocalNuget {
		t.Errorf("sources = %+v", sources)
	}

	reqs := m.Requirements()
	if reqs[0].Range.Kind != semver.Minimum {
		t.Errorf("Newtonsoft.Json range = %+v", reqs[0].Range)
	}
	if reqs[1].Range.Kind != semver.Latest {
		t.Errorf("missing constraint should mean any version, got %+v", reqs[1].Range)
	}

	files := m.SourceFiles()
	if files[0].Owner != "fsprojects" || files[0].Project != "Paket" || files[0].Commit != "abc123" {
		t.Errorf("files[0] = %+v", files[0])
	}
	if files[1].Commit != "" {
		t.Errorf("files[1] commit = %q, want empty", files[1].Commit)
	}
}

func TestParse_missingVersion(t *testing.T) {
	if _, err := Parse([]byte("name: x\n")); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestParse_packagesWithoutSources(t *testing.T) {
	data := []byte(`
version: 1
name: x
packages:
  - name: A
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for packages without sources")
	}
}

func TestParse_duplicatePackage(t *testing.T) {
	data := []byte(`
version: 1
name: x
sources: [https://feed.example]
packages:
  - name: A
  - name: a
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for duplicate package (case-insensitive)")
	}
}

func TestParse_badConstraint(t *testing.T) {
	data := []byte(`
version: 1
name: x
sources: [https://feed.example]
packages:
  - name: A
    version: "~> 1.0"
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unsupported constraint")
	}
}

func TestParse_badFileRepo(t *testing.T) {
	data := []byte(`
version: 1
name: x
files:
  - repo: just-a-name
    path: f.fs
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for repo without owner/project shape")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nupin.yaml")
	m := &Manifest{
		Version: 1,
		Name:    "roundtrip",
		Sources: []string{"https://feed.example"},
		Packages: []Package{
			{Name: "A", Version: ">= 1.0"},
		},
	}
	if err := Save(path, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "roundtrip" || len(got.Packages) != 1 {
		t.Errorf("loaded manifest = %+v", got)
	}
}
