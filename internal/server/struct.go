package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/54b3r/vincula-go/internal/engine"
	"github.com/54b3r/vincula-go/internal/reply"
	"github.com/54b3r/vincula-go/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the TCP port to listen on (default: 8088).
	Port int
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration
	// ShutdownTimeout is the maximum duration for a graceful shutdown.
	ShutdownTimeout time.Duration
	// MaxBodyBytes caps the chat request body (default: 64 KiB).
	MaxBodyBytes int64
	// Logger is the structured logger used by the server and its handlers.
	// If nil, [logging.New] is used.
	Logger *slog.Logger
	// Pingers is the ordered list of dependency probes run by GET /api/ready.
	// If empty, /api/ready returns 200 with no checks (liveness-only mode).
	Pingers []Pinger
	// RateLimit is the sustained chat request rate allowed per IP
	// (requests/second). Defaults to 10 if zero.
	RateLimit float64
	// RateBurst is the maximum instantaneous burst per IP. Defaults to 20 if zero.
	RateBurst int
	// MetricsRegistry receives the server's metrics. Defaults to
	// prometheus.DefaultRegisterer.
	MetricsRegistry prometheus.Registerer
	// MetricsGatherer backs GET /metrics. Defaults to
	// prometheus.DefaultGatherer.
	MetricsGatherer prometheus.Gatherer
	// ReplyLog records every chat outcome when non-nil.
	ReplyLog store.ReplyLog
}

// replier is the interface handleChat calls to answer a message.
// *engine.Engine satisfies it; tests inject a fake.
type replier interface {
	// Reply answers message. It never fails.
	Reply(message string) reply.Result
}

// statsProvider is implemented by repliers that can describe their indexes.
type statsProvider interface {
	Stats() []engine.IndexStats
}

// Server is the HTTP transport in front of the engine.
type Server struct {
	// replier answers chat messages.
	replier replier
	// cfg holds the resolved server configuration.
	cfg *Config
	// httpServer is the underlying net/http server.
	httpServer *http.Server
	// log is the structured logger for this server instance.
	log *slog.Logger
	// pingers is the ordered list of dependency probes for GET /api/ready.
	pingers []Pinger
	// metrics holds the Prometheus collectors for this instance.
	metrics *serverMetrics
	// replyLog records chat outcomes; nil when disabled.
	replyLog store.ReplyLog
	// stopRL stops the rate limiter's background eviction goroutine on shutdown.
	stopRL func()
}

// chatRequest is the JSON body for POST /chat and POST /api/chat.
type chatRequest struct {
	// Message is the user's free-text message.
	Message string `json:"message"`
}

// errorResponse is the JSON body of every 4xx response.
type errorResponse struct {
	Error string `json:"error"`
}
