package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"manifest-resolver/internal/ports"
	"manifest-resolver/internal/types"
)

// OptionsFileAdapter loads resolver profiles from YAML files.
type OptionsFileAdapter struct{}

func NewOptionsFileAdapter() OptionsFileAdapter {
	return OptionsFileAdapter{}
}

// LoadOptions reads a resolver profile. An empty path yields the default
// options. Lists left out of the file keep their defaults; an explicit
// empty list disables them.
func (a OptionsFileAdapter) LoadOptions(path string) (types.ResolveOptions, error) {
	if strings.TrimSpace(path) == "" {
		return types.DefaultResolveOptions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ResolveOptions{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("resolver profile not found: " + path).
			WithCause(err)
	}
	return ParseOptions(data)
}

func ParseOptions(data []byte) (types.ResolveOptions, error) {
	var opts types.ResolveOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return types.ResolveOptions{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse resolver profile yaml").
			WithCause(err)
	}
	defaults := types.DefaultResolveOptions()
	if opts.MainFields == nil {
		opts.MainFields = defaults.MainFields
	}
	if opts.AliasFields == nil {
		opts.AliasFields = defaults.AliasFields
	}
	if opts.ConditionProfiles == nil {
		opts.ConditionProfiles = defaults.ConditionProfiles
	}
	if strings.TrimSpace(opts.Target) == "" {
		opts.Target = defaults.Target
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaults.MaxDepth
	}
	if err := validateOptions(opts); err != nil {
		return types.ResolveOptions{}, err
	}
	return opts, nil
}

func validateOptions(opts types.ResolveOptions) error {
	if opts.MaxDepth < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("max_depth must not be negative")
	}
	for _, field := range append(append([]string{}, opts.MainFields...), opts.AliasFields...) {
		if strings.TrimSpace(field) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("field names must not be empty")
		}
	}
	for i, profile := range opts.ConditionProfiles {
		if strings.TrimSpace(profile.Name) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("condition_profiles[%d] is missing a name", i))
		}
		if len(profile.Targets) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("condition profile %s must list targets", profile.Name))
		}
	}
	return nil
}

var _ ports.OptionsSourcePort = OptionsFileAdapter{}
