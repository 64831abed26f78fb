// Package cmd implements the macrolint command-line tool: parsing,
// validation, and registry management over the macrolang embedded
// macro language.
//
// Grounded on the teacher's cli/cmd package layout (one file per
// subcommand, a package-level rootCmd, persistent flags bound in
// Execute()).
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "macrolint",
		Short:        "macrolint",
		SilenceUsage: true,
		Long:         "CLI tool for parsing and validating the macrolang embedded macro language against a function registry.",
	}

	configPath string
	strict     bool

	logger = logrus.StandardLogger()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "macrolint.yaml", "path to the registry/validation config file")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "exit 1 if any diagnostic is reported")
	return rootCmd.Execute()
}
