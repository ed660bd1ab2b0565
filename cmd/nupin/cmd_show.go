package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/ui"
	"github.com/fbkclanna/nupin/internal/workspace"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show what the lock file currently pins",
		RunE:  runShow,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type pinnedPackage struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Source       string   `json:"source"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type pinnedFile struct {
	Repo   string `json:"repo"`
	Path   string `json:"path"`
	Commit string `json:"commit,omitempty"`
}

func runShow(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	packages, files, err := lock.Load(ctx.LockPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		view := struct {
			Packages []pinnedPackage `json:"packages"`
			Files    []pinnedFile    `json:"files"`
		}{Packages: []pinnedPackage{}, Files: []pinnedFile{}}
		for _, p := range packages {
			deps := make([]string, 0, len(p.Dependencies))
			for _, d := range p.Dependencies {
				deps = append(deps, d.Name)
			}
			view.Packages = append(view.Packages, pinnedPackage{
				Name:         p.Name,
				Version:      p.Version.String(),
				Source:       p.Source.String(),
				Dependencies: deps,
			})
		}
		for _, f := range files {
			view.Files = append(view.Files, pinnedFile{Repo: f.Repo(), Path: f.Path, Commit: f.Commit})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	tbl := ui.NewTable(out)
	tbl.Section("PACKAGES")
	for _, p := range packages {
		tbl.Row("  "+p.Name, p.Version, p.Source)
	}
	tbl.Section("FILES")
	for _, f := range files {
		commit := "(unpinned)"
		if f.Commit != "" {
			commit = shortCommit(f.Commit)
		}
		tbl.Row("  "+f.Repo()+"/"+f.Path, commit, "")
	}
	return tbl.Flush()
}
