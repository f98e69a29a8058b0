// Package server implements the HTTP transport that exposes the engine as a
// JSON API. The server is started by the `vincula serve` CLI command.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/54b3r/vincula-go/internal/logging"
	"github.com/54b3r/vincula-go/internal/reply"
	"github.com/54b3r/vincula-go/internal/store"
)

// defaultMaxBodyBytes caps chat request bodies.
const defaultMaxBodyBytes = 64 << 10

// Error codes returned in {"error": ...} bodies.
const (
	errMissingMessage  = "missing_message"
	errInvalidRequest  = "invalid_request"
	errRequestTooLarge = "request_too_large"
	errRateLimited     = "rate_limited"
)

// Values of the chat outcome metric label.
const (
	outcomeOK          = "ok"
	outcomeInvalid     = "invalid"
	outcomeTooLarge    = "too_large"
	outcomeRateLimited = "rate_limited"
)

// New constructs a Server from the provided replier and config.
func New(r replier, cfg *Config) (*Server, error) {
	if r == nil {
		return nil, fmt.Errorf("server: replier must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8088
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = defaultRateBurst
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New()
	}
	if cfg.MetricsRegistry == nil {
		cfg.MetricsRegistry = prometheus.DefaultRegisterer
	}
	if cfg.MetricsGatherer == nil {
		cfg.MetricsGatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		replier:  r,
		cfg:      cfg,
		log:      cfg.Logger,
		pingers:  cfg.Pingers,
		metrics:  newServerMetrics(cfg.MetricsRegistry),
		replyLog: cfg.ReplyLog,
	}
	if sp, ok := r.(statsProvider); ok {
		s.metrics.publishIndexStats(sp.Stats())
	}

	rl, stop := newRateLimiter(limiterConfig{
		RPS:   cfg.RateLimit,
		Burst: cfg.RateBurst,
		OnReject: func(*http.Request) {
			s.metrics.chatRequestsTotal.WithLabelValues(outcomeRateLimited).Inc()
		},
	})
	s.stopRL = stop

	chat := rl.middleware(http.HandlerFunc(s.handleChat))

	mux := http.NewServeMux()
	mux.Handle("POST /chat", chat)
	mux.Handle("POST /api/chat", chat)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      requestLogger(cfg.Logger, s.metrics, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start begins listening and serving HTTP requests. It blocks until the
// context is cancelled, then performs a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	defer s.stopRL()
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("server: listening", slog.String("addr", "http://"+s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen error: %w", err)
	case <-ctx.Done():
		s.log.Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// handleChat handles POST /chat and POST /api/chat. The body is
// {"message": "..."}; the response is the engine result as JSON.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logging.FromContext(r.Context())

	var req chatRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.observeChat(outcomeTooLarge, start)
			writeError(w, http.StatusRequestEntityTooLarge, errRequestTooLarge)
			return
		}
		s.observeChat(outcomeInvalid, start)
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}

	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		s.observeChat(outcomeInvalid, start)
		writeError(w, http.StatusBadRequest, errMissingMessage)
		return
	}

	res := s.replier.Reply(msg)
	s.observeChat(outcomeOK, start)
	s.metrics.replyTotal.WithLabelValues(res.Lang, res.Domain).Inc()
	s.record(r.Context(), res)

	log.Debug("chat: replied",
		slog.String("lang", res.Lang),
		slog.String("domain", res.Domain),
		slog.Int("sources", len(res.Sources)),
	)
	writeJSON(w, http.StatusOK, res)
}

// record appends the outcome to the reply log. Failures are logged and never
// affect the response.
func (s *Server) record(ctx context.Context, res reply.Result) {
	if s.replyLog == nil {
		return
	}
	entry := store.Entry{
		RequestID:   requestIDFromContext(ctx),
		Lang:        res.Lang,
		Domain:      res.Domain,
		SourceCount: len(res.Sources),
	}
	if len(res.Sources) > 0 {
		entry.TopScore = res.Sources[0].Score
	}
	if _, err := s.replyLog.Record(ctx, entry); err != nil {
		logging.FromContext(ctx).Warn("reply log: record failed", slog.Any("error", err))
	}
}

func (s *Server) observeChat(outcome string, start time.Time) {
	s.metrics.chatRequestsTotal.WithLabelValues(outcome).Inc()
	s.metrics.chatDurationSeconds.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}
