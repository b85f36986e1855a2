package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"manifest-resolver/internal/ports"
	"manifest-resolver/internal/types"
)

// ManifestStoreAdapter caches built manifests by path and modification
// time. Concurrent loads of the same file share a single parse; reads of
// a cached manifest need no coordination since manifests are immutable.
type ManifestStoreAdapter struct {
	source  ports.ManifestSourcePort
	builder ports.ManifestBuilderPort

	mu    sync.RWMutex
	cache map[string]manifestCacheEntry
	group singleflight.Group
}

type manifestCacheEntry struct {
	modTime  time.Time
	manifest types.PackageJSON
}

func NewManifestStoreAdapter(source ports.ManifestSourcePort, builder ports.ManifestBuilderPort) *ManifestStoreAdapter {
	return &ManifestStoreAdapter{
		source:  source,
		builder: builder,
		cache:   map[string]manifestCacheEntry{},
	}
}

func (a *ManifestStoreAdapter) Load(ctx context.Context, path string) (types.PackageJSON, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, types.ManifestFileName)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return types.PackageJSON{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid manifest path: " + path).
			WithCause(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return types.PackageJSON{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.json: " + abs).
			WithCause(err)
	}

	a.mu.RLock()
	entry, ok := a.cache[abs]
	a.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.manifest, nil
	}

	key := fmt.Sprintf("%s@%d", abs, info.ModTime().UnixNano())
	value, err, shared := a.group.Do(key, func() (any, error) {
		a.mu.RLock()
		entry, ok := a.cache[abs]
		a.mu.RUnlock()
		if ok && entry.modTime.Equal(info.ModTime()) {
			return entry.manifest, nil
		}
		raw, err := a.source.ReadManifest(abs)
		if err != nil {
			return nil, err
		}
		manifest, err := a.builder.Load(ctx, abs, raw)
		if err != nil {
			return nil, err
		}
		a.mu.Lock()
		a.cache[abs] = manifestCacheEntry{modTime: info.ModTime(), manifest: manifest}
		a.mu.Unlock()
		return manifest, nil
	})
	if err != nil {
		return types.PackageJSON{}, err
	}
	log.Debug().Str("manifest", abs).Bool("shared", shared).Msg("manifest built")
	return value.(types.PackageJSON), nil
}

// Invalidate evicts the cached manifest for path, if any.
func (a *ManifestStoreAdapter) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	a.mu.Lock()
	delete(a.cache, abs)
	a.mu.Unlock()
}

// Len returns the number of cached manifests.
func (a *ManifestStoreAdapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.cache)
}

var _ ports.ManifestStorePort = (*ManifestStoreAdapter)(nil)
