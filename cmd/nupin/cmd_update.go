package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/ui"
	"github.com/fbkclanna/nupin/internal/workspace"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Resolve dependencies and rewrite the lock file",
		RunE:  runUpdate,
	}
	cmd.Flags().Bool("force", false, "Re-query package sources, ignoring cached responses")
	return cmd
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	force, _ := cmd.Flags().GetBool("force")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	packages, files, err := ctx.Update(force)
	if err != nil {
		return err
	}

	reportUpdate(cmd, ctx, packages, files)
	return nil
}

func reportUpdate(cmd *cobra.Command, ctx *workspace.Context, packages []lock.Package, files []lock.SourceFile) {
	progress := ui.NewProgress(cmd.OutOrStdout())
	for _, p := range packages {
		progress.Done(fmt.Sprintf("pinned %s %s", p.Name, p.Version))
	}
	for _, f := range files {
		if f.Commit != "" {
			progress.Done(fmt.Sprintf("pinned %s %s @ %s", f.Repo(), f.Path, shortCommit(f.Commit)))
		} else {
			progress.Done(fmt.Sprintf("added %s %s (unpinned)", f.Repo(), f.Path))
		}
	}
	progress.Log("Lock file written to %s", ctx.LockPath)
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
