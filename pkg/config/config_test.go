package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/graphcheck/pkg/check"
	"github.com/matzehuels/graphcheck/pkg/document"
	"github.com/matzehuels/graphcheck/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graphcheck.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
policy = "cycle"
max_depth = 64
max_nodes = -1
concurrency = 8
format = "yaml"
yaml_nodes = true
output = "json"
cache_dir = ".graphcheck-cache"
cache_ttl = "1h30m"

[server]
addr = "127.0.0.1:9090"
max_body_bytes = 1024
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Policy:      "cycle",
		MaxDepth:    64,
		MaxNodes:    -1,
		Concurrency: 8,
		Format:      "yaml",
		YAMLNodes:   true,
		Output:      OutputJSON,
		CacheDir:    ".graphcheck-cache",
		CacheTTL:    90 * time.Minute,
		Server:      Server{Addr: "127.0.0.1:9090", MaxBodyBytes: 1024},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	got, err := Load(writeConfig(t, `policy = "cycle"`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.Policy = "cycle"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNegativeLimitsDisable(t *testing.T) {
	cfg, err := Load(writeConfig(t, "max_depth = -5\nmax_nodes = -100"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p, err := cfg.CheckPolicy()
	if err != nil {
		t.Fatalf("CheckPolicy() error = %v", err)
	}
	if got := check.Run(make([]any, 3), p); !got.Safe {
		t.Errorf("Run() = %+v, want safe", got)
	}
	deep := []any{[]any{[]any{[]any{1}}}}
	if got := check.Run(deep, p.WithLimits(check.Limits{MaxDepth: 1})); got.Safe {
		t.Error("Run() with depth 1 = safe, want depth_exceeded")
	}
	if got := check.Run(deep, p); !got.Safe {
		t.Errorf("Run() with negative limits = %+v, want safe", got)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load(\"\") mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.Code
		wantText string
	}{
		{"bad policy", `policy = "xml"`, errors.ErrCodeInvalidConfig, "Policy"},
		{"zero concurrency", `concurrency = 0`, errors.ErrCodeInvalidConfig, "Concurrency"},
		{"bad output", `output = "html"`, errors.ErrCodeInvalidConfig, "Output"},
		{"negative cache ttl", `cache_ttl = "-1s"`, errors.ErrCodeInvalidConfig, "CacheTTL"},
		{"bad body limit", "[server]\nmax_body_bytes = 0", errors.ErrCodeInvalidConfig, "MaxBodyBytes"},
		{"unknown key", `polcy = "json"`, errors.ErrCodeInvalidConfig, "polcy"},
		{"syntax", `policy = `, errors.ErrCodeInvalidConfig, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("Load() error = %v, want code %s", err, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantText)
			}
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestCheckPolicy(t *testing.T) {
	cfg := Default()
	cfg.Policy = check.PolicyCycle
	cfg.MaxDepth = 12

	p, err := cfg.CheckPolicy()
	if err != nil {
		t.Fatalf("CheckPolicy() error = %v", err)
	}
	want := check.CycleOnly.WithLimits(check.Limits{MaxDepth: 12})
	if p != want {
		t.Errorf("CheckPolicy() = %+v, want %+v", p, want)
	}
}

func TestDocumentFormat(t *testing.T) {
	cfg := Default()
	if f, err := cfg.DocumentFormat(); err != nil || f != "" {
		t.Errorf("DocumentFormat() = %q, %v, want empty", f, err)
	}

	cfg.Format = "yml"
	if f, err := cfg.DocumentFormat(); err != nil || f != document.FormatYAML {
		t.Errorf("DocumentFormat() = %q, %v, want %q", f, err, document.FormatYAML)
	}
}
