package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/logging"
)

// NewIndexCmd constructs the `vincula index` command, which builds every
// language index and prints what went into it.
func NewIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the indexes and print per-language statistics",
		Long: `Load the corpus, build every language index and print document, chunk
and vocabulary counts. Useful to check the corpus layout before serving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New()

			eng, err := buildEngine(cmd.Context(), log)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "LANG\tDOCUMENTS\tCHUNKS\tVOCABULARY")
			for _, s := range eng.Stats() {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", s.Lang, s.Documents, s.Chunks, s.Vocabulary)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if eng.TotalChunks() == 0 {
				log.Warn("index: no chunks indexed; check VINCULA_DOCS_DIR")
			}
			return nil
		},
	}
}
