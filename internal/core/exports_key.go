package core

import (
	"strings"

	"manifest-resolver/internal/types"
)

// ClassifyExportsKey maps a raw exports/imports map key to its typed form.
// Every string classifies to exactly one kind:
//
//	"."       -> main
//	"./sub"   -> pattern "/sub" (all leading dots stripped)
//	"#priv"   -> pattern "#priv"
//	"import"  -> condition "import"
func ClassifyExportsKey(raw string) types.ExportsKey {
	switch {
	case raw == ".":
		return types.MainKey()
	case strings.HasPrefix(raw, "./"):
		return types.PatternKey(strings.TrimLeft(raw, "."))
	case strings.HasPrefix(raw, "#"):
		return types.PatternKey(raw)
	default:
		return types.ConditionKey(raw)
	}
}
