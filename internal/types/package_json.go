package types

import "path/filepath"

// ManifestFileName is the only file name a PackageJSON may be built from.
const ManifestFileName = "package.json"

// BrowserFieldKind is the variant tag of a BrowserField.
type BrowserFieldKind int

const (
	// BrowserWhole replaces the entire package with one path.
	BrowserWhole BrowserFieldKind = iota
	// BrowserPathMap remaps individual paths or bare requests.
	BrowserPathMap
)

// BrowserAlias is one entry of a browser path map. Keys starting with "."
// are stored as absolute paths resolved against the manifest directory.
type BrowserAlias struct {
	Key   string
	Value JSONValue
}

type BrowserField struct {
	Kind    BrowserFieldKind
	Whole   string
	Aliases []BrowserAlias
}

// Lookup returns the value stored under key. Keys are unique; the loader
// folds duplicates into the position of the first occurrence.
func (b BrowserField) Lookup(key string) (JSONValue, bool) {
	for _, alias := range b.Aliases {
		if alias.Key == key {
			return alias.Value, true
		}
	}
	return JSONValue{}, false
}

// PackageJSON holds the resolution-relevant fields of one package.json.
// It is built once by the manifest loader and never mutated afterwards,
// so a single value may be shared by any number of concurrent readers.
type PackageJSON struct {
	path string

	// Name is empty when the manifest has no "name" field.
	Name string

	// MainFields holds one value per configured main field present in
	// the manifest, in configuration order.
	MainFields []string

	Exports ExportsField
	Imports MatchObject

	// BrowserFields holds one entry per configured alias field present in
	// the manifest, in configuration order.
	BrowserFields []BrowserField
}

func NewPackageJSON(path string) PackageJSON {
	return PackageJSON{path: path}
}

// Path returns the path of the package.json file itself.
func (p PackageJSON) Path() string {
	return p.path
}

// Directory returns the directory owning the manifest. Callers guarantee
// Path ends in package.json; the loader refuses any other file name.
func (p PackageJSON) Directory() string {
	return filepath.Dir(p.path)
}

func (p PackageJSON) ExportsPresent() bool {
	return !p.Exports.IsAbsent()
}
