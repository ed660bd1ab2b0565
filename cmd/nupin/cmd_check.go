package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/nupin/internal/lock"
	"github.com/fbkclanna/nupin/internal/workspace"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the lock file matches the manifest",
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}

	current, err := os.ReadFile(ctx.LockPath)
	if err != nil {
		return fmt.Errorf("no lock file at %s (run nupin update)", ctx.LockPath)
	}

	res, files, err := ctx.Create(false)
	if err != nil {
		return err
	}
	report, err := res.ConflictReport()
	if err != nil {
		return err
	}
	if report != "" {
		return fmt.Errorf("could not resolve dependencies:\n%s", report)
	}
	packages, err := res.Packages()
	if err != nil {
		return err
	}

	if lock.Write(packages, files) != string(current) {
		return fmt.Errorf("%s is out of date (run nupin update)", workspace.LockName)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", workspace.LockName)
	return nil
}
