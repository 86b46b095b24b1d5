// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: libraries emit events through the registered
// hooks and the defaults discard them. Backends are registered by main, so
// the check and document packages never import a metrics library.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    prom.New(prometheus.DefaultRegisterer).Install()
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Checks().OnCheckStart(ctx, source, policy)
//	// ... walk the value ...
//	observability.Checks().OnCheckComplete(ctx, source, policy, result, stats, duration)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/graphcheck/pkg/check"
)

// =============================================================================
// Check Hooks
// =============================================================================

// CheckHooks receives events from graph checks.
type CheckHooks interface {
	OnCheckStart(ctx context.Context, source, policy string)
	OnCheckComplete(ctx context.Context, source, policy string, res check.Result, stats check.Stats, duration time.Duration)
}

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives events from document decoding.
type DocumentHooks interface {
	// OnDocumentDecoded records a decode attempt. err is nil on success.
	OnDocumentDecoded(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP service.
type HTTPHooks interface {
	// OnRequest records a served request. route is the matched pattern, not
	// the raw path.
	OnRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCheckHooks is a no-op implementation of CheckHooks.
type NoopCheckHooks struct{}

func (NoopCheckHooks) OnCheckStart(context.Context, string, string) {}
func (NoopCheckHooks) OnCheckComplete(context.Context, string, string, check.Result, check.Stats, time.Duration) {
}

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnDocumentDecoded(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	checkHooks    CheckHooks    = NoopCheckHooks{}
	documentHooks DocumentHooks = NoopDocumentHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetCheckHooks registers custom check hooks.
// This should be called once at application startup before any checks run.
func SetCheckHooks(h CheckHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		checkHooks = h
	}
}

// SetDocumentHooks registers custom document hooks.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Checks returns the registered check hooks.
func Checks() CheckHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return checkHooks
}

// Documents returns the registered document hooks.
func Documents() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	checkHooks = NoopCheckHooks{}
	documentHooks = NoopDocumentHooks{}
	httpHooks = NoopHTTPHooks{}
}
