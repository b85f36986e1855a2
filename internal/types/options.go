package types

// DefaultMaxDepth bounds how deeply the target matcher descends into a
// nested exports tree before giving up.
const DefaultMaxDepth = 32

// ResolveOptions carries the caller configuration the loader and matcher
// need. It is usually read from a resolver profile file.
type ResolveOptions struct {
	MainFields        []string           `yaml:"main_fields"`
	AliasFields       []string           `yaml:"alias_fields"`
	ConditionProfiles []ConditionProfile `yaml:"condition_profiles"`
	Target            string             `yaml:"target"`
	MaxDepth          int                `yaml:"max_depth,omitempty"`
}

// ConditionProfile enables a set of condition names for the listed
// target environments. A target of "*" applies to every environment.
type ConditionProfile struct {
	Name       string   `yaml:"name"`
	Targets    []string `yaml:"targets"`
	Conditions []string `yaml:"conditions"`
}

func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		MainFields:  []string{"main"},
		AliasFields: []string{"browser"},
		ConditionProfiles: []ConditionProfile{
			{Name: "node", Targets: []string{"node"}, Conditions: []string{"node"}},
			{Name: "browser", Targets: []string{"browser"}, Conditions: []string{"browser"}},
		},
		Target:   "node",
		MaxDepth: DefaultMaxDepth,
	}
}
