package commands

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/54b3r/vincula-go/internal/config"
	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/server"
)

// NewServeCmd constructs the `vincula serve` command, which builds the
// indexes and serves the chat API over HTTP.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the vincula HTTP server",
		Long: `Build every language index and start the HTTP server.

Routes:
  POST /chat, /api/chat   {"message": "..."} → structured reply
  GET  /api/health        liveness
  GET  /api/ready         index and reply log probes
  GET  /metrics           Prometheus metrics

Examples:
  vincula serve
  vincula serve --port 9090
  VINCULA_DOCS_DIR=./corpus vincula serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			settings, err := config.Server()
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			if cmd.Flags().Changed("host") {
				settings.Host = host
			}
			if cmd.Flags().Changed("port") {
				settings.Port = port
			}

			eng, err := buildEngine(ctx, log)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			pingers := []server.Pinger{server.NewIndexPinger(eng)}
			cfg := &server.Config{
				Host:      settings.Host,
				Port:      settings.Port,
				Logger:    log,
				RateLimit: settings.RateLimit,
				RateBurst: settings.RateBurst,
			}
			if st := openReplyLog(log); st != nil {
				defer func() { _ = st.Close() }()
				cfg.ReplyLog = st
				pingers = append(pingers, server.NewStorePinger(st))
			}
			cfg.Pingers = pingers

			srv, err := server.New(eng, cfg)
			if err != nil {
				return fmt.Errorf("serve: failed to create server: %w", err)
			}

			log.Info("serve starting",
				slog.String("addr", srv.Addr()),
				slog.Int("chunks", eng.TotalChunks()),
			)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host address to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "TCP port to listen on")

	return cmd
}
