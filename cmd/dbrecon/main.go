// Package main provides the entry point for the dbrecon agent and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbrecon/dbrecon/logger"
	"github.com/dbrecon/dbrecon/version"
)

func main() {
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "dbrecon",
		Short: "dbrecon compares result sets across SQL databases",
		Long: `dbrecon is a cross-database comparison tool. It executes queries
against two independently configured SQL databases (possibly different
engines) and reports row-level differences. It can run as a one-shot CLI
or as a long-running agent that polls a control plane for jobs.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of dbrecon",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dbrecon %s (built %s)\n", version.GetVersion(), version.GetBuildDate())
		},
	})

	rootCmd.AddCommand(newAgentCommand())
	rootCmd.AddCommand(newCompareCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
