package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"manifest-resolver/internal/adapters"
	"manifest-resolver/internal/core"
	"manifest-resolver/internal/policies"
	"manifest-resolver/internal/ports"
	"manifest-resolver/internal/types"
)

type Service struct {
	Options   ports.OptionsSourcePort
	Workspace ports.WorkspacePort
	Source    ports.ManifestSourcePort

	// Store is optional. When nil each request builds a store for the
	// loaded profile, so manifests are cached for that request only.
	Store ports.ManifestStorePort
}

func NewService() Service {
	return Service{
		Options:   adapters.NewOptionsFileAdapter(),
		Workspace: adapters.NewWorkspaceAdapter(),
		Source:    adapters.NewManifestFileAdapter(),
	}
}

// session bundles what one request needs: the profile, the manifest
// store and the matcher for the enabled conditions.
type session struct {
	options    types.ResolveOptions
	store      ports.ManifestStorePort
	matcher    core.TargetMatcher
	conditions []string
}

// sessionOverrides carries per-request settings that win over the profile.
type sessionOverrides struct {
	Target     string
	Kind       types.RequestKind
	Conditions []string
	MaxDepth   int
}

func (s Service) newSession(ctx context.Context, profile string, overrides sessionOverrides) (session, error) {
	opts, err := s.Options.LoadOptions(profile)
	if err != nil {
		return session{}, err
	}
	if strings.TrimSpace(overrides.Target) != "" {
		opts.Target = overrides.Target
	}
	if overrides.MaxDepth > 0 {
		opts.MaxDepth = overrides.MaxDepth
	}
	kind := overrides.Kind
	if kind == "" {
		kind = types.RequestKindImport
	}
	policy := policies.NewConditionPolicy(opts.ConditionProfiles, opts.Target)
	conditions, err := policy.EnabledConditions(kind)
	if err != nil {
		return session{}, err
	}
	conditions = mergeConditions(conditions, overrides.Conditions)

	store := s.Store
	if store == nil {
		store = adapters.NewManifestStoreAdapter(s.Source, core.NewManifestLoader(opts))
	}
	log.Ctx(ctx).Debug().
		Str("target", opts.Target).
		Strs("profiles", policy.ProfileNames()).
		Strs("conditions", conditions).
		Msg("conditions enabled")
	return session{
		options:    opts,
		store:      store,
		matcher:    core.NewTargetMatcher(conditions).WithMaxDepth(opts.MaxDepth),
		conditions: conditions,
	}, nil
}

func mergeConditions(base []string, extra []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(base)+len(extra))
	for _, condition := range append(append([]string{}, base...), extra...) {
		condition = strings.TrimSpace(condition)
		if condition == "" {
			continue
		}
		if _, ok := seen[condition]; ok {
			continue
		}
		seen[condition] = struct{}{}
		out = append(out, condition)
	}
	return out
}
