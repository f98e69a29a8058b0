package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/logging"
)

// exitWords end an interactive chat session.
var exitWords = map[string]bool{"sair": true, "exit": true, "quit": true}

// NewChatCmd constructs the `vincula chat` command, an interactive loop that
// answers one message per input line.
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat interactively on the terminal",
		Long: `Read messages from stdin, one per line, and print each reply.
Type "sair", "exit" or "quit" (or send EOF) to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New()

			eng, err := buildEngine(cmd.Context(), log)
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprintln(out, `vincula: type your message ("sair" to leave)`)
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				msg := strings.TrimSpace(scanner.Text())
				if msg == "" {
					continue
				}
				if exitWords[strings.ToLower(msg)] {
					return nil
				}
				fmt.Fprintf(out, "%s\n\n", eng.Reply(msg).Answer)
			}
		},
	}
}
