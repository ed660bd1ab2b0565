package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nupin",
		Short:   "Dependency pinning for NuGet packages and GitHub file references",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().String("root", ".", "Project directory containing nupin.yaml")
	cmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	cmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newUpdateCmd(),
		newShowCmd(),
		newCheckCmd(),
	)

	return cmd
}
