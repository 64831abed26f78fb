package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedlang/macrolang/parser"
)

var (
	validateCmd = &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse each file with full validation against the configured registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New("at least one file argument required")
			}

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			mgr, err := loadRegistry(cfg)
			if err != nil {
				return err
			}

			p := parser.WithValidation(cfg.Validate.toParserConfig(), mgr)
			total := 0
			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				_, diags := p.Parse(string(data))
				if len(diags) == 0 {
					continue
				}
				fmt.Printf("%s:\n", file)
				for _, d := range diags {
					fmt.Printf("  %s\n", d.String())
				}
				total += len(diags)
			}

			if strict && total > 0 {
				return fmt.Errorf("%d diagnostic(s) reported across %d file(s)", total, len(args))
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(validateCmd)
}
