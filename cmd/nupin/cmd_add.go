package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fbkclanna/nupin/internal/manifest"
	"github.com/fbkclanna/nupin/internal/semver"
	"github.com/fbkclanna/nupin/internal/workspace"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [package ...]",
		Short: "Add package or file requirements to the manifest",
		RunE:  runAdd,
	}
	cmd.Flags().String("version", "", "Version constraint (single package only)")
	cmd.Flags().String("repo", "", "Add a file from this owner/project repository")
	cmd.Flags().String("path", "", "Path of the file within --repo")
	cmd.Flags().String("commit", "", "Pin the --repo file to this commit")
	cmd.Flags().Bool("update", false, "Rewrite the lock file after adding")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	constraint, _ := cmd.Flags().GetString("version")
	repo, _ := cmd.Flags().GetString("repo")
	path, _ := cmd.Flags().GetString("path")
	commit, _ := cmd.Flags().GetString("commit")
	doUpdate, _ := cmd.Flags().GetBool("update")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	if repo != "" {
		if len(args) > 0 {
			return fmt.Errorf("--repo cannot be combined with package arguments")
		}
		if path == "" {
			return fmt.Errorf("--repo requires --path")
		}
		ctx.Manifest.Files = append(ctx.Manifest.Files, manifest.File{
			Repo:   repo,
			Path:   path,
			Commit: commit,
		})
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s\n", repo, path)
	} else {
		newPackages, err := collectNewPackages(ctx.Manifest, args, constraint)
		if err != nil {
			return err
		}
		if len(newPackages) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No packages added.")
			return nil
		}
		ctx.Manifest.Packages = append(ctx.Manifest.Packages, newPackages...)
		for _, p := range newPackages {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", p.Name)
		}
	}

	if err := manifest.Save(ctx.ManifestPath, ctx.Manifest); err != nil {
		return err
	}

	if doUpdate {
		packages, files, err := ctx.Update(false)
		if err != nil {
			return err
		}
		reportUpdate(cmd, ctx, packages, files)
	}
	return nil
}

// collectNewPackages gathers packages to add via interactive or CLI mode.
func collectNewPackages(m *manifest.Manifest, args []string, constraint string) ([]manifest.Package, error) {
	existing := make(map[string]bool, len(m.Packages))
	for _, p := range m.Packages {
		existing[strings.ToLower(p.Name)] = true
	}

	if len(args) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("no packages provided and stdin is not a TTY; provide package names as arguments")
		}
		packages, err := interactiveAddPackages(existing)
		if err != nil {
			return nil, fmt.Errorf("interactive add: %w", err)
		}
		return packages, nil
	}

	if constraint != "" && len(args) > 1 {
		return nil, fmt.Errorf("--version applies to a single package (got %d)", len(args))
	}
	if _, err := semver.ParseRange(constraint); err != nil {
		return nil, err
	}

	packages := make([]manifest.Package, 0, len(args))
	for _, name := range args {
		if existing[strings.ToLower(name)] {
			return nil, fmt.Errorf("package %s is already listed in the manifest", name)
		}
		existing[strings.ToLower(name)] = true
		packages = append(packages, manifest.Package{Name: name, Version: constraint})
	}
	return packages, nil
}
