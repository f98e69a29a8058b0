package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/logging"
)

// NewAskCmd constructs the `vincula ask` command, which answers a single
// message and prints the reply to stdout.
func NewAskCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Answer a single message",
		Long: `Answer one message and exit.

The language is detected from the message. With --json the full structured
result (lang, answer, domain, sources) is printed instead of the answer text.

Examples:
  vincula ask "como lidar com ciúmes no relacionamento?"
  vincula ask --json "how do I talk about anxiety with my partner?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New()

			eng, err := buildEngine(cmd.Context(), log)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			res := eng.Reply(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if !asJSON {
				_, err = fmt.Fprintln(out, res.Answer)
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(res)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full structured result as JSON")

	return cmd
}
