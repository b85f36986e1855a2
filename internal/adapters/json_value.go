package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"manifest-resolver/internal/types"
)

// maxJSONDepth bounds recursion while decoding hostile input.
const maxJSONDepth = 512

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeJSONValue parses a single JSON document into a JSONValue that keeps
// object members in source order. A leading UTF-8 byte order mark is
// ignored and numbers are kept in their literal form.
func DecodeJSONValue(data []byte) (types.JSONValue, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.UseNumber()
	value, err := decodeValue(dec, 0)
	if err != nil {
		return types.JSONValue{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return types.JSONValue{}, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

func decodeValue(dec *json.Decoder, depth int) (types.JSONValue, error) {
	if depth > maxJSONDepth {
		return types.JSONValue{}, fmt.Errorf("json nesting exceeds %d levels", maxJSONDepth)
	}
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return types.JSONValue{}, io.ErrUnexpectedEOF
		}
		return types.JSONValue{}, err
	}
	switch t := tok.(type) {
	case nil:
		return types.NullValue(), nil
	case bool:
		return types.BoolValue(t), nil
	case json.Number:
		return types.NumberValue(t.String()), nil
	case string:
		return types.StringValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, depth)
		case '[':
			return decodeArray(dec, depth)
		}
	}
	return types.JSONValue{}, fmt.Errorf("unexpected json token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (types.JSONValue, error) {
	value := types.ObjectValue()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return types.JSONValue{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return types.JSONValue{}, fmt.Errorf("unexpected object key %v", keyTok)
		}
		member, err := decodeValue(dec, depth+1)
		if err != nil {
			return types.JSONValue{}, err
		}
		value.Members = append(value.Members, types.Member(key, member))
	}
	if _, err := dec.Token(); err != nil {
		return types.JSONValue{}, err
	}
	return value, nil
}

func decodeArray(dec *json.Decoder, depth int) (types.JSONValue, error) {
	value := types.ArrayValue()
	for dec.More() {
		item, err := decodeValue(dec, depth+1)
		if err != nil {
			return types.JSONValue{}, err
		}
		value.Array = append(value.Array, item)
	}
	if _, err := dec.Token(); err != nil {
		return types.JSONValue{}, err
	}
	return value, nil
}
