package ports

import (
	"context"

	"manifest-resolver/internal/types"
)

// ManifestSourcePort decodes package.json content into an ordered JSON
// value tree.
type ManifestSourcePort interface {
	ReadManifest(path string) (types.JSONValue, error)
}

// ManifestStorePort hands out built manifests. Implementations parse each
// file at most once per modification and share the result between
// concurrent callers.
type ManifestStorePort interface {
	Load(ctx context.Context, path string) (types.PackageJSON, error)
	Invalidate(path string)
}

// ManifestBuilderPort turns decoded package.json content into a manifest.
type ManifestBuilderPort interface {
	Load(ctx context.Context, path string, raw types.JSONValue) (types.PackageJSON, error)
}
