package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quizdrill/quizdrill/internal/app"
	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/config"
	"github.com/quizdrill/quizdrill/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "quizdrill",
	Short: "Terminal flashcard drills from JSON question banks",
	Long: "Quizdrill loads a JSON question bank, drills you on it with filters\n" +
		"for question type and review mode, and keeps per-question progress\n" +
		"in a local SQLite database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("bank", "", "Path to the question bank JSON (overrides QUIZDRILL_BANK)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite progress file (overrides QUIZDRILL_DB)")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig loads the environment configuration and applies flag
// overrides, flags winning.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.Bank = p
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	return cfg, nil
}

// runApp loads the bank, opens the progress store, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	progress.SetLogLevel(cfg.Level())

	b, err := bank.Load(cfg.Bank)
	if err != nil {
		return err
	}

	st, err := progress.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open progress store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{Bank: b, Store: st})
}
