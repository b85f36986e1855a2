package types

// RequestKind selects the module system of the importing code.
type RequestKind string

const (
	RequestKindImport  RequestKind = "import"
	RequestKindRequire RequestKind = "require"
)

// ConditionDefault always matches inside a conditional map.
const ConditionDefault = "default"

type FindingSeverity string

const (
	FindingError   FindingSeverity = "error"
	FindingWarning FindingSeverity = "warning"
)
