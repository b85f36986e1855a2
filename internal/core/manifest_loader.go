package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-resolver/internal/types"
)

// ManifestLoader builds PackageJSON values from decoded package.json
// content using the configured main and alias field names.
type ManifestLoader struct {
	MainFields  []string
	AliasFields []string
}

func NewManifestLoader(opts types.ResolveOptions) ManifestLoader {
	return ManifestLoader{
		MainFields:  opts.MainFields,
		AliasFields: opts.AliasFields,
	}
}

// Load converts raw into a PackageJSON owned by the package.json at path.
// Missing optional fields are never an error; a field whose JSON shape
// cannot be represented fails with a *ParseError cause.
func (l ManifestLoader) Load(ctx context.Context, path string, raw types.JSONValue) (types.PackageJSON, error) {
	assert.NotEmpty(ctx, path, "package.json path must be set")
	if filepath.Base(path) != types.ManifestFileName {
		return types.PackageJSON{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("manifest path must name %s: %s", types.ManifestFileName, path))
	}
	if raw.Kind != types.JSONObject {
		return types.PackageJSON{}, parseFailure(path, "", "top-level value must be an object, got "+raw.Kind.String())
	}

	pkg := types.NewPackageJSON(path)
	dir := pkg.Directory()

	for _, field := range l.MainFields {
		if value, ok := raw.Get(field); ok && value.Kind == types.JSONString {
			pkg.MainFields = append(pkg.MainFields, value.String)
		}
	}

	for _, field := range l.AliasFields {
		value, ok := raw.Get(field)
		if !ok || value.IsNull() {
			continue
		}
		browser, err := parseBrowserField(path, field, dir, value)
		if err != nil {
			return types.PackageJSON{}, err
		}
		pkg.BrowserFields = append(pkg.BrowserFields, browser)
	}

	if value, ok := raw.Get("name"); ok {
		switch value.Kind {
		case types.JSONNull:
		case types.JSONString:
			pkg.Name = value.String
		default:
			return types.PackageJSON{}, parseFailure(path, "name", "expected string, got "+value.Kind.String())
		}
	}

	if value, ok := raw.Get("exports"); ok {
		exports, err := parseExportsField(path, "exports", value)
		if err != nil {
			return types.PackageJSON{}, err
		}
		pkg.Exports = exports
	}

	if value, ok := raw.Get("imports"); ok {
		switch value.Kind {
		case types.JSONNull:
		case types.JSONObject:
			imports, err := parseMatchObject(path, "imports", value)
			if err != nil {
				return types.PackageJSON{}, err
			}
			pkg.Imports = imports
		default:
			return types.PackageJSON{}, parseFailure(path, "imports", "expected object, got "+value.Kind.String())
		}
	}

	log.Ctx(ctx).Debug().
		Str("manifest", path).
		Int("main_fields", len(pkg.MainFields)).
		Int("browser_fields", len(pkg.BrowserFields)).
		Str("exports", pkg.Exports.Kind.String()).
		Int("imports", len(pkg.Imports)).
		Msg("manifest loaded")
	return pkg, nil
}

// parseExportsField decodes the untagged exports union: string, then
// array, then object, with null meaning absent.
func parseExportsField(path string, field string, value types.JSONValue) (types.ExportsField, error) {
	switch value.Kind {
	case types.JSONNull:
		return types.AbsentField(), nil
	case types.JSONString:
		return types.LeafField(value.String), nil
	case types.JSONArray:
		items := make([]types.ExportsField, 0, len(value.Array))
		for i, item := range value.Array {
			parsed, err := parseExportsField(path, fmt.Sprintf("%s[%d]", field, i), item)
			if err != nil {
				return types.ExportsField{}, err
			}
			items = append(items, parsed)
		}
		return types.AlternativesField(items...), nil
	case types.JSONObject:
		object, err := parseMatchObject(path, field, value)
		if err != nil {
			return types.ExportsField{}, err
		}
		return types.ExportsField{Kind: types.ExportsConditional, Conditions: object}, nil
	default:
		return types.ExportsField{}, parseFailure(path, field, "expected string, array, object or null, got "+value.Kind.String())
	}
}

func parseMatchObject(path string, field string, value types.JSONValue) (types.MatchObject, error) {
	object := make(types.MatchObject, 0, len(value.Members))
	for _, member := range value.Members {
		parsed, err := parseExportsField(path, field+"."+member.Key, member.Value)
		if err != nil {
			return nil, err
		}
		key := ClassifyExportsKey(member.Key)
		if idx := indexOfKey(object, key); idx >= 0 {
			object[idx].Value = parsed
			continue
		}
		object = append(object, types.MatchEntry{Key: key, Value: parsed})
	}
	return object, nil
}

func indexOfKey(object types.MatchObject, key types.ExportsKey) int {
	for i, entry := range object {
		if entry.Key == key {
			return i
		}
	}
	return -1
}

func parseBrowserField(path string, field string, dir string, value types.JSONValue) (types.BrowserField, error) {
	switch value.Kind {
	case types.JSONString:
		return types.BrowserField{Kind: types.BrowserWhole, Whole: value.String}, nil
	case types.JSONObject:
		browser := types.BrowserField{Kind: types.BrowserPathMap}
		for _, member := range value.Members {
			key := member.Key
			if strings.HasPrefix(key, ".") {
				key = filepath.Join(dir, key)
			}
			browser.Aliases = setAlias(browser.Aliases, key, member.Value)
		}
		return browser, nil
	default:
		return types.BrowserField{}, parseFailure(path, field, "expected string or object, got "+value.Kind.String())
	}
}

func setAlias(aliases []types.BrowserAlias, key string, value types.JSONValue) []types.BrowserAlias {
	for i := range aliases {
		if aliases[i].Key == key {
			aliases[i].Value = value
			return aliases
		}
	}
	return append(aliases, types.BrowserAlias{Key: key, Value: value})
}
