// Package runner checks documents and values against a policy.
//
// A Runner is shared by the CLI and the HTTP service so both report the same
// way: every check produces a [Report] carrying the result, walk statistics
// and timing. Checks of different documents are independent and can run
// concurrently on one Runner.
//
// # Usage
//
//	r, err := runner.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	reports, err := r.CheckFiles(ctx, []string{"a.json", "b.yaml"})
package runner

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphcheck/pkg/cache"
	"github.com/matzehuels/graphcheck/pkg/check"
	"github.com/matzehuels/graphcheck/pkg/config"
	"github.com/matzehuels/graphcheck/pkg/document"
	"github.com/matzehuels/graphcheck/pkg/errors"
	"github.com/matzehuels/graphcheck/pkg/observability"
)

// DefaultDebounce is how long Watch waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Report is the outcome of checking one document or value.
type Report struct {
	Source   string          `json:"source"`
	Format   document.Format `json:"format,omitempty"`
	Policy   string          `json:"policy"`
	RootType string          `json:"root_type"`
	Result   check.Result    `json:"result"`
	Stats    check.Stats     `json:"stats"`
	Duration time.Duration   `json:"duration_ns"`
	Hash     string          `json:"hash,omitempty"`
	Cached   bool            `json:"cached,omitempty"`
}

// Safe reports whether the checked value passed.
func (r *Report) Safe() bool { return r.Result.Safe }

// Runner is stateless apart from its settings and logger.
type Runner struct {
	Policy      check.Policy
	Format      document.Format // forced format; empty detects per file
	Options     document.Options
	Concurrency int
	Debounce    time.Duration
	Logger      *log.Logger

	// Cache holds document reports by content; NullCache disables it.
	Cache    cache.Cache
	CacheTTL time.Duration
}

// New creates a runner from cfg. A nil logger uses log.Default().
func New(cfg config.Config, logger *log.Logger) (*Runner, error) {
	p, err := cfg.CheckPolicy()
	if err != nil {
		return nil, err
	}
	format, err := cfg.DocumentFormat()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = config.DefaultConcurrency
	}
	var store cache.Cache = cache.NewNullCache()
	if cfg.CacheDir != "" {
		fc, err := cache.NewFileCache(cfg.CacheDir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache %s", cfg.CacheDir)
		}
		store = fc
	}
	return &Runner{
		Policy:      p,
		Format:      format,
		Options:     cfg.DocumentOptions(),
		Concurrency: concurrency,
		Debounce:    DefaultDebounce,
		Logger:      logger,
		Cache:       store,
		CacheTTL:    cfg.CacheTTL,
	}, nil
}

// CheckValue walks v under the runner's policy.
func (r *Runner) CheckValue(ctx context.Context, source string, v any) *Report {
	hooks := observability.Checks()
	hooks.OnCheckStart(ctx, source, r.Policy.Name)

	start := time.Now()
	res, stats := check.Measure(v, r.Policy)
	elapsed := time.Since(start)

	hooks.OnCheckComplete(ctx, source, r.Policy.Name, res, stats, elapsed)

	logger := r.Logger.With("source", source, "policy", r.Policy.Name)
	if res.Safe {
		logger.Debug("check passed", "nodes", stats.Nodes, "depth", stats.Depth, "duration", elapsed)
	} else {
		logger.Debug("check failed", "failure", res.Failure, "path", res.Path, "duration", elapsed)
	}

	return &Report{
		Source:   source,
		Policy:   r.Policy.Name,
		RootType: check.TypeOf(v),
		Result:   res,
		Stats:    stats,
		Duration: elapsed,
	}
}

// Close releases the report cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// CheckDocument checks a decoded document. A report cached for the same
// content, format and policy is returned with Cached set instead of walking
// again. Cache errors are logged and otherwise ignored.
func (r *Runner) CheckDocument(ctx context.Context, doc *document.Document) *Report {
	if r.Cache == nil {
		return r.checkDocument(ctx, doc)
	}

	key := cache.ReportKey(doc.Hash, string(doc.Format), r.Options.YAMLNodes, r.Policy)
	if data, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("cache read failed", "source", doc.Source, "err", err)
	} else if ok {
		var rep Report
		if err := json.Unmarshal(data, &rep); err == nil {
			r.Logger.Debug("cache hit", "source", doc.Source)
			rep.Source = doc.Source
			rep.Cached = true
			return &rep
		}
	}

	rep := r.checkDocument(ctx, doc)
	if data, err := json.Marshal(rep); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.CacheTTL); err != nil {
			r.Logger.Warn("cache write failed", "source", doc.Source, "err", err)
		}
	}
	return rep
}

func (r *Runner) checkDocument(ctx context.Context, doc *document.Document) *Report {
	rep := r.CheckValue(ctx, doc.Source, doc.Value)
	rep.Format = doc.Format
	rep.Hash = doc.Hash
	return rep
}

// CheckReader decodes one document from rd and checks it. An empty format
// falls back to the runner's forced format.
func (r *Runner) CheckReader(ctx context.Context, source string, rd io.Reader, format document.Format) (*Report, error) {
	if format == "" {
		format = r.Format
	}
	doc, err := document.Read(ctx, source, rd, format, r.Options)
	if err != nil {
		return nil, err
	}
	return r.CheckDocument(ctx, doc), nil
}

// CheckFile loads and checks the file at path.
func (r *Runner) CheckFile(ctx context.Context, path string) (*Report, error) {
	doc, err := document.Load(ctx, path, r.Format, r.Options)
	if err != nil {
		return nil, err
	}
	return r.CheckDocument(ctx, doc), nil
}

// CheckFiles checks paths concurrently, at most Concurrency at a time. It
// returns the reports of every file that could be loaded, in input order,
// together with the combined load errors of the rest.
func (r *Runner) CheckFiles(ctx context.Context, paths []string) ([]*Report, error) {
	reports := make([]*Report, len(paths))

	var (
		mu   sync.Mutex
		errs error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep, err := r.CheckFile(gctx, path)
			if err != nil {
				r.Logger.Debug("load failed", "source", path, "err", err)
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
				return nil
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*Report, 0, len(reports))
	for _, rep := range reports {
		if rep != nil {
			out = append(out, rep)
		}
	}
	return out, errs
}
