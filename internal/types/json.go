package types

// JSONKind identifies the shape of a JSONValue.
type JSONKind int

const (
	JSONNull JSONKind = iota
	JSONBool
	JSONNumber
	JSONString
	JSONArray
	JSONObject
)

func (k JSONKind) String() string {
	switch k {
	case JSONNull:
		return "null"
	case JSONBool:
		return "boolean"
	case JSONNumber:
		return "number"
	case JSONString:
		return "string"
	case JSONArray:
		return "array"
	case JSONObject:
		return "object"
	default:
		return "unknown"
	}
}

// JSONMember is one key/value pair of a JSON object.
type JSONMember struct {
	Key   string
	Value JSONValue
}

// JSONValue is a generic JSON tree whose objects keep their source key
// order. package.json semantics depend on that order (condition shadowing,
// pattern tie-breaking), so a plain map cannot be used.
type JSONValue struct {
	Kind    JSONKind
	Bool    bool
	Number  string
	String  string
	Array   []JSONValue
	Members []JSONMember
}

func NullValue() JSONValue {
	return JSONValue{Kind: JSONNull}
}

func BoolValue(b bool) JSONValue {
	return JSONValue{Kind: JSONBool, Bool: b}
}

func NumberValue(n string) JSONValue {
	return JSONValue{Kind: JSONNumber, Number: n}
}

func StringValue(s string) JSONValue {
	return JSONValue{Kind: JSONString, String: s}
}

func ArrayValue(items ...JSONValue) JSONValue {
	return JSONValue{Kind: JSONArray, Array: items}
}

func ObjectValue(members ...JSONMember) JSONValue {
	return JSONValue{Kind: JSONObject, Members: members}
}

func Member(key string, value JSONValue) JSONMember {
	return JSONMember{Key: key, Value: value}
}

// Get returns the last member named key. Duplicate keys follow the usual
// JSON decoder behaviour where the later value wins.
func (v JSONValue) Get(key string) (JSONValue, bool) {
	if v.Kind != JSONObject {
		return JSONValue{}, false
	}
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Key == key {
			return v.Members[i].Value, true
		}
	}
	return JSONValue{}, false
}

func (v JSONValue) IsNull() bool {
	return v.Kind == JSONNull
}
