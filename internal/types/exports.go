package types

// ExportsKeyKind distinguishes the three key spaces of an exports/imports
// map. Subpath routing and condition routing share one key type; the
// matcher tells them apart only by which lookup it performs.
type ExportsKeyKind int

const (
	// ExportsKeyMain is the literal "." export point.
	ExportsKeyMain ExportsKeyKind = iota
	// ExportsKeyPattern is a "./"- or "#"-prefixed subpath. The leading
	// dots are stripped, so "./sub" is stored as "/sub".
	ExportsKeyPattern
	// ExportsKeyCondition is any other key: "import", "require", "default"...
	ExportsKeyCondition
)

func (k ExportsKeyKind) String() string {
	switch k {
	case ExportsKeyMain:
		return "main"
	case ExportsKeyPattern:
		return "pattern"
	case ExportsKeyCondition:
		return "condition"
	default:
		return "unknown"
	}
}

type ExportsKey struct {
	Kind  ExportsKeyKind
	Value string
}

func MainKey() ExportsKey {
	return ExportsKey{Kind: ExportsKeyMain}
}

func PatternKey(value string) ExportsKey {
	return ExportsKey{Kind: ExportsKeyPattern, Value: value}
}

func ConditionKey(name string) ExportsKey {
	return ExportsKey{Kind: ExportsKeyCondition, Value: name}
}

func (k ExportsKey) IsSubpath() bool {
	return k.Kind == ExportsKeyMain || k.Kind == ExportsKeyPattern
}

func (k ExportsKey) String() string {
	switch k.Kind {
	case ExportsKeyMain:
		return "."
	case ExportsKeyPattern:
		if len(k.Value) > 0 && k.Value[0] == '/' {
			return "." + k.Value
		}
		return k.Value
	default:
		return k.Value
	}
}

// ExportsFieldKind is the variant tag of an ExportsField.
type ExportsFieldKind int

const (
	// ExportsAbsent covers a missing field and an explicit null. It is
	// distinct from an empty map.
	ExportsAbsent ExportsFieldKind = iota
	ExportsLeaf
	ExportsAlternatives
	ExportsConditional
)

func (k ExportsFieldKind) String() string {
	switch k {
	case ExportsAbsent:
		return "absent"
	case ExportsLeaf:
		return "leaf"
	case ExportsAlternatives:
		return "alternatives"
	case ExportsConditional:
		return "conditional"
	default:
		return "unknown"
	}
}

// ExportsField is the recursive value of an "exports" field or of any
// entry nested inside one. Only the member matching Kind is populated.
type ExportsField struct {
	Kind         ExportsFieldKind
	Target       string
	Alternatives []ExportsField
	Conditions   MatchObject
}

// MatchEntry is one key/subtree pair of a MatchObject.
type MatchEntry struct {
	Key   ExportsKey
	Value ExportsField
}

// MatchObject is an exports/imports map in source key order.
type MatchObject []MatchEntry

// Lookup returns the first entry whose key equals key.
func (m MatchObject) Lookup(key ExportsKey) (ExportsField, bool) {
	for _, entry := range m {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return ExportsField{}, false
}

// HasSubpathKeys reports whether any key is "." or a subpath pattern.
func (m MatchObject) HasSubpathKeys() bool {
	for _, entry := range m {
		if entry.Key.IsSubpath() {
			return true
		}
	}
	return false
}

func AbsentField() ExportsField {
	return ExportsField{Kind: ExportsAbsent}
}

func LeafField(target string) ExportsField {
	return ExportsField{Kind: ExportsLeaf, Target: target}
}

func AlternativesField(items ...ExportsField) ExportsField {
	return ExportsField{Kind: ExportsAlternatives, Alternatives: items}
}

func ConditionalField(entries ...MatchEntry) ExportsField {
	return ExportsField{Kind: ExportsConditional, Conditions: MatchObject(entries)}
}

func (f ExportsField) IsAbsent() bool {
	return f.Kind == ExportsAbsent
}
