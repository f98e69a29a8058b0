package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/54b3r/vincula-go/internal/engine"
)

// newMetricsTestServer builds a Server backed by a fresh isolated registry so
// tests do not pollute prometheus.DefaultRegisterer.
func newMetricsTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	s := &Server{
		replier: &fakeReplier{},
		cfg: &Config{
			MetricsRegistry: reg,
			MetricsGatherer: reg,
		},
		metrics: newServerMetrics(reg),
	}
	return s, reg
}

// findMetric returns the metric in family name whose labels include all of
// want, or nil.
func findMetric(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) *dto.Metric {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			matched := 0
			for _, lp := range m.GetLabel() {
				if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
					matched++
				}
			}
			if matched == len(want) {
				return m
			}
		}
	}
	return nil
}

func Test_Metrics_EndpointReturns200(t *testing.T) {
	t.Parallel()
	_, reg := newMetricsTestServer(t)

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	t.Cleanup(srv.Close)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/metrics", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("want 200, got %d", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("want text/plain content-type, got %q", ct)
	}
}

func Test_Metrics_ChatCounterIncremented(t *testing.T) {
	t.Parallel()
	s, reg := newMetricsTestServer(t)
	s.replier = &fakeReplier{result: generalResult()}
	s.cfg.MaxBodyBytes = defaultMaxBodyBytes

	postChat(s, `{"message":"oi"}`)
	postChat(s, `{}`)

	ok := findMetric(t, reg, "vincula_chat_requests_total", map[string]string{"outcome": "ok"})
	if ok == nil || ok.GetCounter().GetValue() != 1 {
		t.Errorf("want chat_requests_total{outcome=ok}=1, got %v", ok)
	}
	invalid := findMetric(t, reg, "vincula_chat_requests_total", map[string]string{"outcome": "invalid"})
	if invalid == nil || invalid.GetCounter().GetValue() != 1 {
		t.Errorf("want chat_requests_total{outcome=invalid}=1, got %v", invalid)
	}
	replies := findMetric(t, reg, "vincula_reply_total", map[string]string{"lang": "pt", "domain": "general"})
	if replies == nil || replies.GetCounter().GetValue() != 1 {
		t.Errorf("want reply_total{lang=pt,domain=general}=1, got %v", replies)
	}
}

func Test_Metrics_IndexGauges(t *testing.T) {
	t.Parallel()
	s, reg := newMetricsTestServer(t)

	s.metrics.publishIndexStats([]engine.IndexStats{
		{Lang: "pt", Chunks: 12, Vocabulary: 340},
		{Lang: "en", Chunks: 0, Vocabulary: 0},
	})

	pt := findMetric(t, reg, "vincula_index_chunks", map[string]string{"lang": "pt"})
	if pt == nil || pt.GetGauge().GetValue() != 12 {
		t.Errorf("want index_chunks{lang=pt}=12, got %v", pt)
	}
	vocab := findMetric(t, reg, "vincula_index_vocabulary", map[string]string{"lang": "pt"})
	if vocab == nil || vocab.GetGauge().GetValue() != 340 {
		t.Errorf("want index_vocabulary{lang=pt}=340, got %v", vocab)
	}
}
