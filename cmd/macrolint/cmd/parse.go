package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedlang/macrolang/astutil"
	"github.com/embedlang/macrolang/parser"
)

var (
	parseCmd = &cobra.Command{
		Use:   "parse <file>",
		Short: "Extract and parse a host file, printing the AST and any diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("exactly one file argument required")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			program, diags := parser.WithConfig(parser.SyntaxOnly()).Parse(string(data))
			fmt.Print(astutil.Format(&program))

			for _, d := range diags {
				fmt.Printf("%s:%s\n", args[0], d.String())
			}

			if strict && len(diags) > 0 {
				return fmt.Errorf("%d diagnostic(s) reported", len(diags))
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(parseCmd)
}
