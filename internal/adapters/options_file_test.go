package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifest-resolver/internal/types"
)

func TestOptionsFileAdapterDefaults(t *testing.T) {
	opts, err := NewOptionsFileAdapter().LoadOptions("")
	require.NoError(t, err)
	if diff := cmp.Diff(types.DefaultResolveOptions(), opts); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionsFileAdapterLoadsProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolver.yaml")
	content := `main_fields: [module, main]
alias_fields: []
target: browser
max_depth: 8
condition_profiles:
  - name: web
    targets: [browser]
    conditions: [browser, worker]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	opts, err := NewOptionsFileAdapter().LoadOptions(path)
	require.NoError(t, err)
	want := types.ResolveOptions{
		MainFields:  []string{"module", "main"},
		AliasFields: []string{},
		ConditionProfiles: []types.ConditionProfile{
			{Name: "web", Targets: []string{"browser"}, Conditions: []string{"browser", "worker"}},
		},
		Target:   "browser",
		MaxDepth: 8,
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("unexpected options (-want +got):\n%s", diff)
	}
}

func TestOptionsFileAdapterPartialProfileKeepsDefaults(t *testing.T) {
	opts, err := ParseOptions([]byte("target: browser\n"))
	require.NoError(t, err)
	defaults := types.DefaultResolveOptions()
	assert.Equal(t, defaults.MainFields, opts.MainFields)
	assert.Equal(t, defaults.AliasFields, opts.AliasFields)
	assert.Equal(t, defaults.MaxDepth, opts.MaxDepth)
	assert.Equal(t, "browser", opts.Target)
}

func TestOptionsFileAdapterRejectsInvalidProfiles(t *testing.T) {
	for _, content := range []string{
		"max_depth: -1\n",
		"main_fields: ['']\n",
		"condition_profiles:\n  - targets: [node]\n",
		"condition_profiles:\n  - name: empty\n",
		"main_fields: {\n",
	} {
		_, err := ParseOptions([]byte(content))
		assert.Error(t, err, "content %q", content)
	}
}

func TestOptionsFileAdapterMissingFile(t *testing.T) {
	_, err := NewOptionsFileAdapter().LoadOptions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver profile not found")
}
