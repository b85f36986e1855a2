package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifest-resolver/internal/adapters"
	"manifest-resolver/internal/core"
	"manifest-resolver/internal/types"
)

func fixturesRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "fixtures"))
	require.NoError(t, err)
	return root
}

func fixturePackage(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(fixturesRoot(t), "workspace", "packages", name, "package.json")
}

func fixtureProfile(t *testing.T) string {
	t.Helper()
	return filepath.Join(fixturesRoot(t), "profile.yaml")
}

func TestResolveExportsApp(t *testing.T) {
	service := NewService()
	manifest := fixturePackage(t, "ui-kit")

	cases := []struct {
		name    string
		request string
		kind    types.RequestKind
		target  string
		want    []string
	}{
		{name: "import", request: ".", kind: types.RequestKindImport, want: []string{"./dist/index.mjs"}},
		{name: "require", request: ".", kind: types.RequestKindRequire, want: []string{"./dist/index.cjs"}},
		{name: "browser", request: ".", target: "browser", want: []string{"./dist/browser.js"}},
		{name: "bare subpath", request: "components/button", want: []string{"./dist/components/button.js"}},
		{name: "pattern", request: "./components/button", want: []string{"./dist/components/button.js"}},
		{name: "exact", request: "./package.json", want: []string{"./package.json"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.ResolveExports(t.Context(), ResolveRequest{
				Manifest:    manifest,
				Request:     tc.request,
				Kind:        tc.kind,
				Target:      tc.target,
				ProfilePath: fixtureProfile(t),
			})
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, result.Targets); diff != "" {
				t.Fatalf("unexpected targets (-want +got):\n%s", diff)
			}
			require.Len(t, result.Paths, len(tc.want))
			assert.Equal(t, filepath.Join(filepath.Dir(manifest), filepath.FromSlash(tc.want[0])), result.Paths[0])
			assert.Equal(t, manifest, result.Manifest)
		})
	}
}

func TestResolveExportsAppNotExported(t *testing.T) {
	service := NewService()
	_, err := service.ResolveExports(t.Context(), ResolveRequest{
		Manifest:    fixturePackage(t, "ui-kit"),
		Request:     "./components/internal/secret",
		ProfilePath: fixtureProfile(t),
	})
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindNotExported))
}

func TestResolveExportsAppExtraConditions(t *testing.T) {
	service := NewService()
	manifest := fixturePackage(t, "legacy")

	_, err := service.ResolveExports(t.Context(), ResolveRequest{
		Manifest: manifest,
		Request:  "./browser-only",
	})
	require.True(t, core.IsKind(err, core.KindNotExported))

	result, err := service.ResolveExports(t.Context(), ResolveRequest{
		Manifest:   manifest,
		Request:    "./browser-only",
		Conditions: []string{"browser"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"./browser.js"}, result.Targets)
	assert.Contains(t, result.Conditions, "browser")
	assert.Contains(t, result.Conditions, "import")
}

func TestResolveExportsAppRequiresManifest(t *testing.T) {
	_, err := NewService().ResolveExports(t.Context(), ResolveRequest{Request: "."})
	require.Error(t, err)
}

func TestResolveImportsApp(t *testing.T) {
	service := NewService()
	manifest := fixturePackage(t, "ui-kit")

	result, err := service.ResolveImports(t.Context(), ResolveRequest{
		Manifest:    manifest,
		Request:     "#theme",
		ProfilePath: fixtureProfile(t),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"./src/theme.js"}, result.Targets)

	result, err = service.ResolveImports(t.Context(), ResolveRequest{
		Manifest:    manifest,
		Request:     "#theme",
		Target:      "browser",
		ProfilePath: fixtureProfile(t),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"./src/theme.browser.js"}, result.Targets)

	result, err = service.ResolveImports(t.Context(), ResolveRequest{
		Manifest: manifest,
		Request:  "#utils/format",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"./src/utils/format.js"}, result.Targets)

	_, err = service.ResolveImports(t.Context(), ResolveRequest{
		Manifest: manifest,
		Request:  "#missing",
	})
	assert.True(t, core.IsKind(err, core.KindImportNotDefined))
}

func TestResolveBrowserApp(t *testing.T) {
	service := NewService()
	manifest := fixturePackage(t, "ui-kit")

	result, err := service.ResolveBrowser(t.Context(), BrowserRequest{
		Manifest: manifest,
		Path:     "./dist/server.js",
	})
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "./dist/server.browser.js", result.Alias)

	result, err = service.ResolveBrowser(t.Context(), BrowserRequest{
		Manifest: manifest,
		Request:  "fs",
	})
	require.NoError(t, err)
	assert.True(t, result.Ignored)
	assert.False(t, result.Found)
	assert.Equal(t, "fs", result.IgnoredPath)

	result, err = service.ResolveBrowser(t.Context(), BrowserRequest{
		Manifest: manifest,
		Request:  "path",
	})
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.False(t, result.Ignored)

	result, err = service.ResolveBrowser(t.Context(), BrowserRequest{
		Manifest: fixturePackage(t, "lib-utils"),
		Request:  "anything",
	})
	require.NoError(t, err)
	assert.Equal(t, BrowserResult{Manifest: fixturePackage(t, "lib-utils"), Alias: "./lib/browser.js", Found: true}, result)

	_, err = service.ResolveBrowser(t.Context(), BrowserRequest{Manifest: manifest})
	require.Error(t, err)
}

func TestResolveBrowserAppIgnoredPath(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"browser":{"./lib/server.js":false}}`), 0644))

	result, err := NewService().ResolveBrowser(t.Context(), BrowserRequest{
		Manifest: manifest,
		Path:     "./lib/server.js",
	})
	require.NoError(t, err)
	assert.True(t, result.Ignored)
	assert.Equal(t, filepath.Join(dir, "lib", "server.js"), result.IgnoredPath)
}

func TestInspectApp(t *testing.T) {
	service := NewService()
	manifest := fixturePackage(t, "ui-kit")

	result, err := service.Inspect(t.Context(), InspectRequest{
		Manifest:    manifest,
		ProfilePath: fixtureProfile(t),
	})
	require.NoError(t, err)
	want := InspectResult{
		Name:        "ui-kit",
		Directory:   filepath.Dir(manifest),
		MainFields:  []string{"./dist/index.mjs", "./dist/index.cjs"},
		ExportsKind: types.ExportsConditional,
		ExportKeys: []string{
			". (main)",
			"./components/* (pattern)",
			"./components/internal/* (pattern)",
			"./package.json (pattern)",
		},
		ImportKeys: []string{"#theme (pattern)", "#utils/* (pattern)"},
		Browser:    []string{"map: 2 entries"},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("unexpected inspect result (-want +got):\n%s", diff)
	}
}

func TestInspectAppParseFailure(t *testing.T) {
	_, err := NewService().Inspect(t.Context(), InspectRequest{Manifest: fixturePackage(t, "broken")})
	require.Error(t, err)
	assert.True(t, core.IsParseFailure(err))
}

func TestValidateApp(t *testing.T) {
	service := NewService()
	report, err := service.Validate(t.Context(), ValidateRequest{
		Roots:       []string{filepath.Join(fixturesRoot(t), "workspace")},
		ProfilePath: fixtureProfile(t),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Manifests)
	assert.True(t, report.HasErrors())

	type summary struct {
		Package  string
		Request  string
		Severity types.FindingSeverity
	}
	got := make([]summary, 0, len(report.Findings))
	for _, finding := range report.Findings {
		got = append(got, summary{
			Package:  filepath.Base(filepath.Dir(finding.Manifest)),
			Request:  finding.Request,
			Severity: finding.Severity,
		})
	}
	want := []summary{
		{Package: "broken", Severity: types.FindingError},
		{Package: "legacy", Request: "./escape", Severity: types.FindingError},
		{Package: "legacy", Request: "./browser-only", Severity: types.FindingWarning},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected findings (-want +got):\n%s", diff)
	}
}

func TestValidateAppRequiresRoots(t *testing.T) {
	_, err := NewService().Validate(t.Context(), ValidateRequest{})
	require.Error(t, err)
}

func TestServiceSharedStore(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"exports":"./main.js"}`), 0644))

	store := adapters.NewManifestStoreAdapter(adapters.NewManifestFileAdapter(), core.NewManifestLoader(types.DefaultResolveOptions()))
	service := NewService()
	service.Store = store

	for range 3 {
		result, err := service.ResolveExports(t.Context(), ResolveRequest{Manifest: dir, Request: "."})
		require.NoError(t, err)
		assert.Equal(t, []string{"./main.js"}, result.Targets)
	}
	assert.Equal(t, 1, store.Len())
}

func TestMergeConditions(t *testing.T) {
	got := mergeConditions([]string{"import", "node"}, []string{" node ", "", "custom"})
	assert.Equal(t, []string{"import", "node", "custom"}, got)
}
