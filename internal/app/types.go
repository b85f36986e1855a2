package app

import "manifest-resolver/internal/types"

type ResolveRequest struct {
	Manifest    string
	Request     string
	Kind        types.RequestKind
	Target      string
	Conditions  []string
	MaxDepth    int
	ProfilePath string
}

type ResolveResult struct {
	Manifest   string
	Request    string
	Conditions []string
	// Targets are the "./"-relative candidates from the manifest.
	Targets []string
	// Paths are the candidates joined onto the manifest directory.
	Paths []string
}

type BrowserRequest struct {
	Manifest    string
	Path        string
	Request     string
	ProfilePath string
}

type BrowserResult struct {
	Manifest string
	Alias    string
	Found    bool
	Ignored  bool
	// IgnoredPath is the path the browser field maps to false, or the bare
	// request when no path was given.
	IgnoredPath string
}

type InspectRequest struct {
	Manifest    string
	ProfilePath string
}

type InspectResult struct {
	Name        string
	Directory   string
	MainFields  []string
	ExportsKind types.ExportsFieldKind
	ExportKeys  []string
	ImportKeys  []string
	Browser     []string
}

type ValidateRequest struct {
	Roots       []string
	ProfilePath string
	Kind        types.RequestKind
	Target      string
	Conditions  []string
	MaxDepth    int
}
