package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/embedlang/macrolang/registry"
)

var (
	completionsCmd = &cobra.Command{
		Use:   "completions <prefix>",
		Short: "Print registry completions for a prefix, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("exactly one prefix argument required")
			}

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			mgr, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			for _, sig := range mgr.GetCompletions(registry.CanonicalName(args[0])) {
				fmt.Println(sig.Name)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(completionsCmd)
}
