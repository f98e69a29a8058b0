package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/logging"
)

// NewStatsCmd constructs the `vincula stats` command, which summarises the
// reply log by language and domain.
func NewStatsCmd() *cobra.Command {
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise logged replies by language and domain",
		Long: `Read the reply log written by 'vincula serve' and print the number of
replies, average source count and average top score per language and domain.

Examples:
  vincula stats
  vincula stats --since 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New()

			st := openReplyLog(log)
			if st == nil {
				return fmt.Errorf("stats: reply log is not available")
			}
			defer func() { _ = st.Close() }()

			var from time.Time
			if since > 0 {
				from = time.Now().Add(-since)
			}
			rows, err := st.Summary(cmd.Context(), from)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "no replies logged")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LANG\tDOMAIN\tREPLIES\tAVG SOURCES\tAVG TOP SCORE")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%.3f\n", r.Lang, r.Domain, r.Count, r.AvgSources, r.AvgTopScore)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().DurationVar(&since, "since", 0, "Only count replies newer than this (e.g. 24h); 0 means all")

	return cmd
}
