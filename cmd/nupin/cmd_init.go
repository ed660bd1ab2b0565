package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fbkclanna/nupin/internal/manifest"
	"github.com/fbkclanna/nupin/internal/workspace"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <name>",
		Short: "Create a new project manifest interactively or from flags",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().StringSlice("source", nil, "Package sources (feed URLs or local paths)")
	cmd.Flags().Bool("force", false, "Overwrite an existing manifest")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]
	root, _ := cmd.Flags().GetString("root")
	sources, _ := cmd.Flags().GetStringSlice("source")
	force, _ := cmd.Flags().GetBool("force")

	if filepath.IsAbs(name) || strings.Contains(filepath.Clean(name), "..") {
		return fmt.Errorf("invalid project name %q: must be a simple directory name (no absolute paths or ..)", name)
	}

	dir := filepath.Join(root, name)
	manifestPath := filepath.Join(dir, workspace.ManifestName)

	if _, err := os.Stat(manifestPath); err == nil && !force {
		return fmt.Errorf("project %q already exists (use --force to overwrite)", name)
	}

	m := &manifest.Manifest{
		Version: 1,
		Name:    name,
		Sources: sources,
	}

	if len(sources) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("interactive init requires a TTY; use --source to specify package sources")
		}
		source, err := promptSource()
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
		m.Sources = []string{source}

		packages, err := interactiveAddPackages(nil)
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
		m.Packages = packages
	}

	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // project dir needs to be world-readable
		return fmt.Errorf("creating project directory: %w", err)
	}
	if err := manifest.Save(manifestPath, m); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project %q created at %s\n", name, dir)
	return nil
}
