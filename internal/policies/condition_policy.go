package policies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"manifest-resolver/internal/types"
)

// ConditionPolicy selects the condition names enabled for one target
// environment. Profiles that do not list the target are dropped up front.
type ConditionPolicy struct {
	Profiles []types.ConditionProfile
	Target   string
}

func NewConditionPolicy(profiles []types.ConditionProfile, target string) ConditionPolicy {
	policy := ConditionPolicy{Target: normalizeTarget(target)}
	for _, profile := range profiles {
		if !matchesTarget(policy.Target, profile.Targets) {
			continue
		}
		policy.Profiles = append(policy.Profiles, profile)
	}
	return policy
}

// EnabledConditions returns the sorted condition set for a request of the
// given kind. The kind itself ("import" or "require") is always enabled;
// "default" needs no entry since the matcher honours it unconditionally.
func (p ConditionPolicy) EnabledConditions(kind types.RequestKind) ([]string, error) {
	switch kind {
	case types.RequestKindImport, types.RequestKindRequire:
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown request kind: %s", kind))
	}
	set := map[string]struct{}{string(kind): {}}
	for _, profile := range p.Profiles {
		for _, condition := range profile.Conditions {
			condition = strings.TrimSpace(condition)
			if condition == "" || condition == types.ConditionDefault {
				continue
			}
			set[condition] = struct{}{}
		}
	}
	conditions := make([]string, 0, len(set))
	for condition := range set {
		conditions = append(conditions, condition)
	}
	sort.Strings(conditions)
	return conditions, nil
}

// ProfileNames lists the profiles that apply to the policy target.
func (p ConditionPolicy) ProfileNames() []string {
	names := make([]string, 0, len(p.Profiles))
	for _, profile := range p.Profiles {
		names = append(names, profile.Name)
	}
	return names
}

func matchesTarget(target string, targets []string) bool {
	if target == "" {
		return true
	}
	for _, entry := range targets {
		normalized := normalizeTarget(entry)
		if normalized == "*" || normalized == target {
			return true
		}
	}
	return false
}

func normalizeTarget(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
