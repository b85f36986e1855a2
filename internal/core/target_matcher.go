package core

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"manifest-resolver/internal/types"
)

// TargetMatcher resolves exports and imports requests against a manifest
// for one fixed set of enabled conditions. It holds no mutable state and
// may be shared across goroutines.
type TargetMatcher struct {
	Conditions map[string]struct{}
	MaxDepth   int
}

func NewTargetMatcher(conditions []string) TargetMatcher {
	set := make(map[string]struct{}, len(conditions))
	for _, condition := range conditions {
		if condition = strings.TrimSpace(condition); condition != "" {
			set[condition] = struct{}{}
		}
	}
	return TargetMatcher{Conditions: set, MaxDepth: types.DefaultMaxDepth}
}

func (m TargetMatcher) WithMaxDepth(depth int) TargetMatcher {
	if depth > 0 {
		m.MaxDepth = depth
	}
	return m
}

// ResolveExports resolves a package subpath such as "." or "./feature/x"
// through the manifest's "exports" field.
func (m TargetMatcher) ResolveExports(pkg types.PackageJSON, subpath string) ([]string, error) {
	request := normalizeSubpath(subpath)
	targets, err := m.resolveTree(pkg.Exports, ClassifyExportsKey(request))
	return targets, withContext(err, pkg.Path(), request)
}

// ResolveTree resolves request against an exports tree. A tree that is not
// a subpath map is shorthand for {".": tree}.
func (m TargetMatcher) ResolveTree(tree types.ExportsField, request types.ExportsKey) ([]string, error) {
	targets, err := m.resolveTree(tree, request)
	return targets, coded(err)
}

func (m TargetMatcher) resolveTree(tree types.ExportsField, request types.ExportsKey) ([]string, error) {
	switch {
	case tree.IsAbsent():
		return nil, notExported()
	case tree.Kind == types.ExportsConditional && tree.Conditions.HasSubpathKeys():
		return m.matchObject(tree.Conditions, request, KindNotExported)
	case request.Kind == types.ExportsKeyMain:
		return m.resolveTarget(tree, nil, 1)
	default:
		return nil, notExported()
	}
}

// ResolveImports resolves a "#"-prefixed specifier through the manifest's
// "imports" field.
func (m TargetMatcher) ResolveImports(pkg types.PackageJSON, specifier string) ([]string, error) {
	if specifier == "#" || strings.HasPrefix(specifier, "#/") || !strings.HasPrefix(specifier, "#") {
		return nil, coded(&ResolveError{
			Kind:     KindImportNotDefined,
			Manifest: pkg.Path(),
			Request:  specifier,
			Reason:   "import specifiers must start with # followed by a name",
		})
	}
	if len(pkg.Imports) == 0 {
		return nil, coded(&ResolveError{Kind: KindImportNotDefined, Manifest: pkg.Path(), Request: specifier})
	}
	targets, err := m.matchObject(pkg.Imports, ClassifyExportsKey(specifier), KindImportNotDefined)
	if IsKind(err, KindNotExported) {
		err = &ResolveError{Kind: KindImportNotDefined, Target: errTarget(err)}
	}
	return targets, withContext(err, pkg.Path(), specifier)
}

// matchObject performs subpath routing: an exact key first, then the most
// specific single-wildcard pattern. Pattern ties go to the key that
// appears first in the manifest.
func (m TargetMatcher) matchObject(object types.MatchObject, request types.ExportsKey, missKind ResolveErrorKind) ([]string, error) {
	// Keys holding a wildcard only match through pattern routing.
	if request.IsSubpath() && !strings.Contains(request.Value, "*") {
		if subtree, ok := object.Lookup(request); ok {
			return m.resolveTarget(subtree, nil, 1)
		}
	}
	if request.Kind != types.ExportsKeyPattern {
		return nil, &ResolveError{Kind: missKind}
	}

	best := -1
	bestPrefix := -1
	var capture string
	for i, entry := range object {
		if entry.Key.Kind != types.ExportsKeyPattern {
			continue
		}
		prefix, suffix, ok := splitPattern(entry.Key.Value)
		if !ok || len(prefix) <= bestPrefix {
			continue
		}
		if len(request.Value) < len(entry.Key.Value) {
			continue
		}
		if !strings.HasPrefix(request.Value, prefix) || !strings.HasSuffix(request.Value, suffix) {
			continue
		}
		best = i
		bestPrefix = len(prefix)
		capture = request.Value[len(prefix) : len(request.Value)-len(suffix)]
	}
	if best < 0 {
		return nil, &ResolveError{Kind: missKind}
	}
	return m.resolveTarget(object[best].Value, &capture, 1)
}

// resolveTarget walks a subtree. capture is non-nil when the enclosing
// pattern key consumed a wildcard segment.
func (m TargetMatcher) resolveTarget(tree types.ExportsField, capture *string, depth int) ([]string, error) {
	if depth > m.maxDepth() {
		return nil, invalidTarget("", fmt.Sprintf("exports nesting exceeds %d levels", m.maxDepth()))
	}
	switch tree.Kind {
	case types.ExportsAbsent:
		return nil, notExported()
	case types.ExportsLeaf:
		return resolveLeaf(tree.Target, capture)
	case types.ExportsAlternatives:
		var lastErr error = notExported()
		for _, alternative := range tree.Alternatives {
			targets, err := m.resolveTarget(alternative, capture, depth+1)
			if err == nil {
				return targets, nil
			}
			lastErr = err
		}
		return nil, lastErr
	case types.ExportsConditional:
		for _, entry := range tree.Conditions {
			if !m.conditionMatches(entry.Key) {
				continue
			}
			return m.resolveTarget(entry.Value, capture, depth+1)
		}
		return nil, notExported()
	default:
		return nil, invalidTarget("", "unknown exports value")
	}
}

func (m TargetMatcher) conditionMatches(key types.ExportsKey) bool {
	if key.Kind != types.ExportsKeyCondition {
		return false
	}
	if key.Value == types.ConditionDefault {
		return true
	}
	_, ok := m.Conditions[key.Value]
	return ok
}

func (m TargetMatcher) maxDepth() int {
	if m.MaxDepth <= 0 {
		return types.DefaultMaxDepth
	}
	return m.MaxDepth
}

func resolveLeaf(target string, capture *string) ([]string, error) {
	if capture != nil {
		if !strings.Contains(target, "*") {
			return nil, invalidTarget(target, "target has no wildcard to receive the pattern match")
		}
		target = strings.ReplaceAll(target, "*", *capture)
	}
	if !strings.HasPrefix(target, "./") {
		return nil, invalidTarget(target, `target must start with "./"`)
	}
	if escapesPackage(target) {
		return nil, invalidTarget(target, "target resolves outside the package directory")
	}
	return []string{target}, nil
}

// escapesPackage reports whether a "./" target leaves the manifest
// directory once "." and ".." segments are collapsed.
func escapesPackage(target string) bool {
	cleaned := path.Clean(target)
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

// splitPattern splits a key holding exactly one "*" into the literal text
// before and after it.
func splitPattern(key string) (string, string, bool) {
	if strings.Count(key, "*") != 1 {
		return "", "", false
	}
	idx := strings.IndexByte(key, '*')
	return key[:idx], key[idx+1:], true
}

func normalizeSubpath(subpath string) string {
	subpath = strings.TrimSpace(subpath)
	switch {
	case subpath == "" || subpath == ".":
		return "."
	case strings.HasPrefix(subpath, "./"):
		return subpath
	default:
		return "./" + strings.TrimPrefix(subpath, "/")
	}
}

func errTarget(err error) string {
	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) {
		return resolveErr.Target
	}
	return ""
}

// withContext stamps the manifest path and original request onto a
// failure returned from the recursive matcher and wraps it for callers.
func withContext(err error, manifest string, request string) error {
	if err == nil {
		return nil
	}
	var resolveErr *ResolveError
	if !errors.As(err, &resolveErr) {
		return err
	}
	stamped := *resolveErr
	stamped.Manifest = manifest
	stamped.Request = request
	return coded(&stamped)
}
