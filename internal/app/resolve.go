package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-resolver/internal/core"
	"manifest-resolver/internal/types"
)

// ResolveExports maps a package subpath through the "exports" field.
func (s Service) ResolveExports(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	return s.resolve(ctx, req, func(sess session, pkg types.PackageJSON) ([]string, error) {
		return sess.matcher.ResolveExports(pkg, req.Request)
	})
}

// ResolveImports maps a "#" specifier through the "imports" field.
func (s Service) ResolveImports(ctx context.Context, req ResolveRequest) (ResolveResult, error) {
	if strings.TrimSpace(req.Request) == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("import specifier is required")
	}
	return s.resolve(ctx, req, func(sess session, pkg types.PackageJSON) ([]string, error) {
		return sess.matcher.ResolveImports(pkg, req.Request)
	})
}

func (s Service) resolve(ctx context.Context, req ResolveRequest, match func(session, types.PackageJSON) ([]string, error)) (ResolveResult, error) {
	manifest := strings.TrimSpace(req.Manifest)
	if manifest == "" {
		return ResolveResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	sess, err := s.newSession(ctx, req.ProfilePath, sessionOverrides{
		Target:     req.Target,
		Kind:       req.Kind,
		Conditions: req.Conditions,
		MaxDepth:   req.MaxDepth,
	})
	if err != nil {
		return ResolveResult{}, err
	}
	pkg, err := sess.store.Load(ctx, manifest)
	if err != nil {
		return ResolveResult{}, err
	}
	targets, err := match(sess, pkg)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("request", req.Request).Msg("resolution failed")
		return ResolveResult{}, err
	}
	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		paths = append(paths, filepath.Join(pkg.Directory(), filepath.FromSlash(target)))
	}
	log.Ctx(ctx).Debug().Str("request", req.Request).Strs("targets", targets).Msg("resolved")
	return ResolveResult{
		Manifest:   pkg.Path(),
		Request:    req.Request,
		Conditions: sess.conditions,
		Targets:    targets,
		Paths:      paths,
	}, nil
}

// ResolveBrowser applies the configured alias fields to a path or a bare
// request. An ignored module is reported in the result rather than as an
// error.
func (s Service) ResolveBrowser(ctx context.Context, req BrowserRequest) (BrowserResult, error) {
	manifest := strings.TrimSpace(req.Manifest)
	if manifest == "" {
		return BrowserResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	sess, err := s.newSession(ctx, req.ProfilePath, sessionOverrides{})
	if err != nil {
		return BrowserResult{}, err
	}
	pkg, err := sess.store.Load(ctx, manifest)
	if err != nil {
		return BrowserResult{}, err
	}
	path := strings.TrimSpace(req.Path)
	switch {
	case path == "" && req.Request == "":
		return BrowserResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("a path or a request is required")
	case path != "" && !filepath.IsAbs(path):
		path = filepath.Join(pkg.Directory(), path)
	}
	alias, found, err := core.ResolveBrowserField(pkg, path, req.Request)
	if ignoredPath, ignored := core.IgnoredPath(err); ignored {
		if ignoredPath == "" {
			ignoredPath = req.Request
		}
		return BrowserResult{Manifest: pkg.Path(), Ignored: true, IgnoredPath: ignoredPath}, nil
	}
	if err != nil {
		return BrowserResult{}, err
	}
	return BrowserResult{Manifest: pkg.Path(), Alias: alias, Found: found}, nil
}
