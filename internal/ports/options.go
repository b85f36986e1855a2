package ports

import "manifest-resolver/internal/types"

// OptionsSourcePort loads a resolver profile describing main fields,
// alias fields and condition profiles.
type OptionsSourcePort interface {
	LoadOptions(path string) (types.ResolveOptions, error)
}
