package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"manifest-resolver/internal/ports"
	"manifest-resolver/internal/types"
)

// ManifestFileAdapter reads package.json files from disk.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) ReadManifest(path string) (types.JSONValue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.JSONValue{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read package.json: " + path).
			WithCause(err)
	}
	value, err := DecodeJSONValue(data)
	if err != nil {
		return types.JSONValue{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package.json: " + path).
			WithCause(err)
	}
	return value, nil
}

var _ ports.ManifestSourcePort = ManifestFileAdapter{}
