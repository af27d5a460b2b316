package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quizdrill/quizdrill/internal/bank"
	"github.com/quizdrill/quizdrill/internal/progress"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-type progress for the current bank",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		stats := progress.Aggregate(b, st.Snapshot())

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", b.Meta.Title)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tQUESTIONS\tATTEMPTED\tACCURACY\tREVIEW\tSTARRED")
		for _, row := range stats.Kinds {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%d\n",
				row.Kind.Label(), row.Total, row.Attempted, accuracyCell(row), row.Review, row.Starred)
		}
		all := stats.All
		fmt.Fprintf(w, "total\t%d\t%d\t%s\t%d\t%d\n",
			all.Total, all.Attempted, accuracyCell(all), all.Review, all.Starred)
		return w.Flush()
	},
}

func accuracyCell(row progress.KindStats) string {
	if row.Correct+row.Wrong == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", row.Accuracy()*100)
}
