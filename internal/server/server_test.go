package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/graphcheck/pkg/check"
	"github.com/matzehuels/graphcheck/pkg/config"
	"github.com/matzehuels/graphcheck/pkg/errors"
	"github.com/matzehuels/graphcheck/pkg/observability"
	"github.com/matzehuels/graphcheck/pkg/observability/prom"
	"github.com/matzehuels/graphcheck/pkg/runner"
)

func newTestServer(t *testing.T, reg *prometheus.Registry, maxBody int64) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.MaxDepth = 3
	r, err := runner.New(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("runner.New() error = %v", err)
	}
	s := New(r, Options{MaxBodyBytes: maxBody, Gatherer: reg}, log.New(io.Discard))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCheck(t *testing.T) {
	ts := newTestServer(t, prometheus.NewRegistry(), 0)

	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		wantSafe    bool
		wantFailure check.Failure
		wantPolicy  string
		wantSource  string
	}{
		{
			name:        "json body",
			contentType: "application/json",
			body:        `{"a":[1,2,3]}`,
			wantSafe:    true,
			wantPolicy:  check.PolicyJSON,
			wantSource:  "request",
		},
		{
			name:        "yaml from content type",
			query:       "?source=values.yaml",
			contentType: "application/yaml",
			body:        "a:\n  b: 1\n",
			wantSafe:    true,
			wantPolicy:  check.PolicyJSON,
			wantSource:  "values.yaml",
		},
		{
			name:        "format query wins",
			query:       "?format=toml&policy=cycle",
			contentType: "application/json",
			body:        "a = 1\n",
			wantSafe:    true,
			wantPolicy:  check.PolicyCycle,
			wantSource:  "request",
		},
		{
			name:        "too deep is a result",
			contentType: "application/json",
			body:        `{"a":{"b":{"c":{"d":{}}}}}`,
			wantFailure: check.FailureDepthExceeded,
			wantPolicy:  check.PolicyJSON,
			wantSource:  "request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/check"+tt.query, tt.contentType, tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
			}

			var rep runner.Report
			if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
				t.Fatalf("decode report: %v", err)
			}
			if rep.Result.Safe != tt.wantSafe || rep.Result.Failure != tt.wantFailure {
				t.Errorf("Result = %+v, want safe=%v failure=%v", rep.Result, tt.wantSafe, tt.wantFailure)
			}
			if rep.Policy != tt.wantPolicy {
				t.Errorf("Policy = %q, want %q", rep.Policy, tt.wantPolicy)
			}
			if rep.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", rep.Source, tt.wantSource)
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	ts := newTestServer(t, prometheus.NewRegistry(), 64)

	tests := []struct {
		name       string
		query      string
		body       string
		wantStatus int
		wantCode   errors.Code
	}{
		{"bad json", "", `{"a":`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad policy", "?policy=strict", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidPolicy},
		{"bad format", "?format=xml", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad source", "?source=..%2Fetc", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidSource},
		{"too large", "", `{"data":"` + strings.Repeat("x", 100) + `"}`, http.StatusRequestEntityTooLarge, errors.ErrCodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/check"+tt.query, "application/json", tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error.Code != tt.wantCode {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.wantCode, body.Error.Message)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, prometheus.NewRegistry(), 0)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("generated %s = %q is not a UUID", RequestIDHeader, resp.Header.Get(RequestIDHeader))
	}

	want := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, want)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != want {
		t.Errorf("%s = %q, want %q", RequestIDHeader, got, want)
	}
}

func TestMetrics(t *testing.T) {
	defer observability.Reset()

	reg := prometheus.NewRegistry()
	prom.New(reg).Install()
	ts := newTestServer(t, reg, 0)

	post(t, ts.URL+"/v1/check", "application/json", `{"ok":true}`)
	post(t, ts.URL+"/v1/check", "application/json", `{`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		`graphcheck_checks_total{failure="none",policy="json"} 1`,
		`graphcheck_documents_total{format="json",status="error"} 1`,
		`graphcheck_http_requests_total{code="400",method="POST",route="/v1/check"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
}
