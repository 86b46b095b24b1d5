package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/graphcheck/pkg/check"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "a"); hit || err != nil {
		t.Fatalf("Get() on empty cache = %v, %v, want miss", hit, err)
	}

	if err := c.Set(ctx, "a", []byte(`{"safe":true}`), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != `{"safe":true}` {
		t.Errorf("Get() = %q, %v, %v, want stored entry", data, hit, err)
	}

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Delete() = hit, want miss")
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() of expired entry = hit, want miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry still on disk: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() of corrupt entry = %v, %v, want miss", hit, err)
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("hello")) != Hash([]byte("hello")) {
		t.Error("Hash() is not deterministic")
	}
	if Hash([]byte("hello")) == Hash([]byte("world")) {
		t.Error("Hash() collides for different inputs")
	}
	if got := len(Hash(nil)); got != 64 {
		t.Errorf("len(Hash()) = %d, want 64", got)
	}
}

func TestReportKey(t *testing.T) {
	base := ReportKey("abc", "json", false, check.JSONSafety)
	if base != ReportKey("abc", "json", false, check.JSONSafety) {
		t.Error("ReportKey() is not deterministic")
	}
	if len(base) != len("report:")+64 || base[:7] != "report:" {
		t.Errorf("ReportKey() = %q, want report:<sha256>", base)
	}

	variants := map[string]string{
		"hash":      ReportKey("abd", "json", false, check.JSONSafety),
		"format":    ReportKey("abc", "yaml", false, check.JSONSafety),
		"yamlNodes": ReportKey("abc", "json", true, check.JSONSafety),
		"policy":    ReportKey("abc", "json", false, check.CycleOnly),
		"limits":    ReportKey("abc", "json", false, check.JSONSafety.WithLimits(check.Limits{MaxDepth: 3})),
	}
	for name, key := range variants {
		if key == base {
			t.Errorf("ReportKey() ignores %s", name)
		}
	}
}
