package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizdrill/quizdrill/internal/bank"
)

var validateCmd = &cobra.Command{
	Use:   "validate [bank.json]",
	Short: "Check a question bank file and report every defect",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.Bank
		if len(args) == 1 {
			path = args[0]
		}

		b, err := bank.Load(path)
		if err != nil {
			var invalid *bank.ErrInvalidBank
			if errors.As(err, &invalid) {
				fmt.Fprintln(cmd.ErrOrStderr(), invalid.Report())
				cmd.SilenceUsage = true
				if n := len(invalid.Defects); n > 1 {
					return fmt.Errorf("%s: %d defects", path, n)
				}
				return fmt.Errorf("%s: 1 defect", path)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d questions)\n", path, b.Len())
		return nil
	},
}
