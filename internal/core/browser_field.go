package core

import "manifest-resolver/internal/types"

// ResolveBrowserField looks path up in the manifest's browser fields.
// When request is non-empty it is used verbatim as the lookup key instead
// of path; callers pass the bare specifier for unresolved requests and the
// normalized absolute path when re-aliasing a resolved file. An empty
// request means "no literal request", so the empty string itself can never
// be looked up as a key.
//
// The boolean result is false when no alias applies. A mapping to false
// yields a KindIgnored error carrying path.
func ResolveBrowserField(pkg types.PackageJSON, path string, request string) (string, bool, error) {
	key := path
	if request != "" {
		key = request
	}
	for _, browser := range pkg.BrowserFields {
		switch browser.Kind {
		case types.BrowserWhole:
			return browser.Whole, true, nil
		case types.BrowserPathMap:
			if value, ok := browser.Lookup(key); ok {
				return aliasValue(pkg, path, value)
			}
		}
	}
	return "", false, nil
}

// aliasValue interprets a matched browser map entry. Shapes other than a
// string or false are treated as "no alias" and end the lookup.
func aliasValue(pkg types.PackageJSON, path string, value types.JSONValue) (string, bool, error) {
	switch {
	case value.Kind == types.JSONString:
		return value.String, true, nil
	case value.Kind == types.JSONBool && !value.Bool:
		return "", false, coded(&ResolveError{Kind: KindIgnored, Manifest: pkg.Path(), Path: path})
	default:
		return "", false, nil
	}
}
