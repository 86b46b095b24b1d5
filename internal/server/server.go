// Package server exposes the runner over HTTP.
//
// Routes:
//
//	POST /v1/check   check the request body; query: policy, format, source
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus metrics
//
// A check always answers 200 with a report when the body decodes: an unsafe
// document is a result, not a request error.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/graphcheck/pkg/check"
	"github.com/matzehuels/graphcheck/pkg/config"
	"github.com/matzehuels/graphcheck/pkg/document"
	"github.com/matzehuels/graphcheck/pkg/errors"
	"github.com/matzehuels/graphcheck/pkg/runner"
)

const (
	defaultSource   = "request"
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	MaxBodyBytes int64
	// Gatherer backs /metrics. Nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Server serves checks for one runner.
type Server struct {
	runner *runner.Runner
	opts   Options
	logger *log.Logger
	router chi.Router
}

// New builds the router. A nil logger uses log.Default().
func New(r *runner.Runner, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	s := &Server{runner: r, opts: opts, logger: logger}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(s.logRequests)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", s.handleHealth)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	router.Post("/v1/check", s.handleCheck)

	s.router = router
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	rn := *s.runner
	if name := q.Get("policy"); name != "" {
		p, err := check.PolicyByName(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		rn.Policy = p.WithLimits(s.runner.Policy.Limits)
	}

	format, err := requestFormat(r, rn.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	source := q.Get("source")
	if source == "" {
		source = defaultSource
	}
	if err := errors.ValidateSource(source); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	rep, err := rn.CheckReader(ctx, source, body, format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// requestFormat picks the format from the query, then the Content-Type,
// then the runner's forced format, then JSON.
func requestFormat(r *http.Request, forced document.Format) (document.Format, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return document.ParseFormat(name)
	}
	if f, ok := document.FromMediaType(r.Header.Get("Content-Type")); ok {
		return f, nil
	}
	if forced != "" {
		return forced, nil
	}
	return document.FormatJSON, nil
}

type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
