package commands

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/retriever"
	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/budget"
	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/rag"
	"github.com/54b3r/vincula-go/internal/text"
)

// searchPreviewChars bounds each printed passage.
const searchPreviewChars = 200

// NewSearchCmd constructs the `vincula search` command, which prints the raw
// retrieval results for a query without composing a reply.
func NewSearchCmd() *cobra.Command {
	var lang string
	var topK int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Show the passages a query retrieves",
		Long: `Search one language index and print score, source and a preview of
each matching chunk. Without --lang the query's detected language is used.

Examples:
  vincula search "ciúmes e confiança"
  vincula search --lang en --top-k 8 "trust after an argument"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New()
			ctx := cmd.Context()

			eng, err := buildEngine(ctx, log)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			query := strings.Join(args, " ")
			if lang == "" {
				lang = eng.DetectLanguage(query)
			}
			opts := []retriever.Option{retriever.WithIndex(lang)}
			if topK > 0 {
				opts = append(opts, retriever.WithTopK(topK))
			}

			docs, err := eng.Retriever().Retrieve(ctx, query, opts...)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintf(out, "no passages found in %q\n", lang)
				return nil
			}
			for i, d := range docs {
				fmt.Fprintf(out, "%d. %.4f  %v\n   %s\n",
					i+1, d.Score(), d.MetaData[rag.MetaSource],
					budget.Preview(text.CollapseSpace(d.Content), searchPreviewChars, "..."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language index to search (default: detected from the query)")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of passages to return (default: VINCULA_TOP_K)")

	return cmd
}
