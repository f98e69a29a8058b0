package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/54b3r/vincula-go/internal/config"
	"github.com/54b3r/vincula-go/internal/engine"
	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/store"
)

// buildEngine resolves the engine settings from the loaded config and env,
// then builds every language index.
func buildEngine(ctx context.Context, log *slog.Logger) (*engine.Engine, error) {
	settings, err := config.EngineSettings(loadedConfigPath)
	if err != nil {
		return nil, err
	}
	log.Info("building indexes",
		slog.String("docs_dir", settings.Corpus.Root),
		slog.Int("languages", len(settings.Languages)),
	)
	e, err := engine.New(logging.WithLogger(ctx, log), settings)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return e, nil
}

// openReplyLog opens the reply log, or returns nil when it is disabled.
// Failures are logged and disable the log rather than aborting the command.
func openReplyLog(log *slog.Logger) *store.SQLiteStore {
	path, err := config.ReplyLogPath()
	if err != nil {
		log.Warn("reply log: could not resolve path, disabling", slog.Any("error", err))
		return nil
	}
	if path == "" {
		log.Info("reply log: disabled", slog.String("env", config.EnvReplyLogDB))
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		log.Warn("reply log: failed to open store, disabling", slog.Any("error", err))
		return nil
	}
	log.Info("reply log: store opened", slog.String("path", path))
	return st
}
