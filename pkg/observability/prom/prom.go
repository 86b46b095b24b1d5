// Package prom exports observability hooks as Prometheus metrics.
package prom

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/graphcheck/pkg/check"
	"github.com/matzehuels/graphcheck/pkg/observability"
)

// Hooks implements every observability hook interface on top of a set of
// Prometheus collectors.
type Hooks struct {
	checks        *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	checkNodes    prometheus.Histogram
	documents     *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

var (
	_ observability.CheckHooks    = (*Hooks)(nil)
	_ observability.DocumentHooks = (*Hooks)(nil)
	_ observability.HTTPHooks     = (*Hooks)(nil)
)

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Hooks {
	h := &Hooks{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphcheck_checks_total",
			Help: "Total checks by policy and failure kind",
		}, []string{"policy", "failure"}),
		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "graphcheck_check_duration_seconds",
			Help:    "Duration of a single graph walk",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}, []string{"policy"}),
		checkNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "graphcheck_check_nodes",
			Help:    "Composite nodes expanded per check",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphcheck_documents_total",
			Help: "Decoded documents by format and status",
		}, []string{"format", "status"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "graphcheck_http_requests_total",
			Help: "HTTP requests served by method, route and status code",
		}, []string{"method", "route", "code"}),
	}
	if reg != nil {
		reg.MustRegister(h.checks, h.checkDuration, h.checkNodes, h.documents, h.requests)
	}
	return h
}

// Install registers h as the global check, document and HTTP hooks.
func (h *Hooks) Install() {
	observability.SetCheckHooks(h)
	observability.SetDocumentHooks(h)
	observability.SetHTTPHooks(h)
}

func (h *Hooks) OnCheckStart(context.Context, string, string) {}

func (h *Hooks) OnCheckComplete(_ context.Context, _ string, policy string, res check.Result, stats check.Stats, d time.Duration) {
	h.checks.WithLabelValues(policy, res.Failure.String()).Inc()
	h.checkDuration.WithLabelValues(policy).Observe(d.Seconds())
	h.checkNodes.Observe(float64(stats.Nodes))
}

func (h *Hooks) OnDocumentDecoded(_ context.Context, format string, _ int, _ time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.documents.WithLabelValues(format, status).Inc()
}

func (h *Hooks) OnRequest(_ context.Context, method, route string, code int, _ time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
