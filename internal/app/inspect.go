package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"manifest-resolver/internal/types"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	manifest := strings.TrimSpace(req.Manifest)
	if manifest == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	sess, err := s.newSession(ctx, req.ProfilePath, sessionOverrides{})
	if err != nil {
		return InspectResult{}, err
	}
	pkg, err := sess.store.Load(ctx, manifest)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		Name:        pkg.Name,
		Directory:   pkg.Directory(),
		MainFields:  pkg.MainFields,
		ExportsKind: pkg.Exports.Kind,
	}
	if pkg.Exports.Kind == types.ExportsConditional {
		for _, entry := range pkg.Exports.Conditions {
			result.ExportKeys = append(result.ExportKeys, describeKey(entry.Key))
		}
	}
	for _, entry := range pkg.Imports {
		result.ImportKeys = append(result.ImportKeys, describeKey(entry.Key))
	}
	for _, browser := range pkg.BrowserFields {
		switch browser.Kind {
		case types.BrowserWhole:
			result.Browser = append(result.Browser, "whole: "+browser.Whole)
		case types.BrowserPathMap:
			result.Browser = append(result.Browser, fmt.Sprintf("map: %d entries", len(browser.Aliases)))
		}
	}
	return result, nil
}

func describeKey(key types.ExportsKey) string {
	return fmt.Sprintf("%s (%s)", key.String(), key.Kind)
}
