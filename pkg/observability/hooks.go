// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let the CLI or an embedding program observe builds and preview
// requests without the core packages depending on a metrics backend.
// Every hook defaults to a no-op implementation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuildHooks(&myBuildHooks{})
//	    observability.SetServeHooks(&myServeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Build().OnBuildStart(ctx, buildID, target, assets)
//	// ... render ...
//	observability.Build().OnBuildComplete(ctx, buildID, rendered, duration, err)
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/pixelforge/pkg/asset"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the build pipeline.
type BuildHooks interface {
	// OnBuildStart is called once the build order is known.
	OnBuildStart(ctx context.Context, buildID, target string, assets int)

	// OnAssetComplete is called after each asset was built or failed.
	// It may be called concurrently.
	OnAssetComplete(ctx context.Context, buildID string, id asset.ID, duration time.Duration, err error)

	// OnBuildComplete is called when the build finished, with the number of
	// rendered images and the joined build error, if any.
	OnBuildComplete(ctx context.Context, buildID string, rendered int, duration time.Duration, err error)
}

// =============================================================================
// Serve Hooks
// =============================================================================

// ServeHooks receives events from the preview server.
type ServeHooks interface {
	// OnRequest records a served request.
	OnRequest(ctx context.Context, method, path string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string, string, int) {}
func (NoopBuildHooks) OnAssetComplete(context.Context, string, asset.ID, time.Duration, error) {
}
func (NoopBuildHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}

// NoopServeHooks is a no-op implementation of ServeHooks.
type NoopServeHooks struct{}

func (NoopServeHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks BuildHooks = NoopBuildHooks{}
	serveHooks ServeHooks = NoopServeHooks{}
	hooksMu    sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any build.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetServeHooks registers custom preview server hooks.
func SetServeHooks(h ServeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serveHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Serve returns the registered preview server hooks.
func Serve() ServeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serveHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	buildHooks = NoopBuildHooks{}
	serveHooks = NoopServeHooks{}
}
