package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"manifest-resolver/internal/core"
	"manifest-resolver/internal/types"
)

// Validate loads every package.json under the given roots and probes each
// literal exports and imports key with the enabled conditions.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (types.ValidationReport, error) {
	if len(req.Roots) == 0 {
		return types.ValidationReport{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one workspace root is required")
	}
	sess, err := s.newSession(ctx, req.ProfilePath, sessionOverrides{
		Target:     req.Target,
		Kind:       req.Kind,
		Conditions: req.Conditions,
		MaxDepth:   req.MaxDepth,
	})
	if err != nil {
		return types.ValidationReport{}, err
	}

	report := types.ValidationReport{}
	for _, root := range req.Roots {
		paths, err := s.Workspace.FindPackageJSON(root)
		if err != nil {
			return types.ValidationReport{}, err
		}
		for _, path := range paths {
			report.Manifests++
			pkg, err := sess.store.Load(ctx, path)
			if err != nil {
				if core.IsParseFailure(err) || errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument {
					report.Findings = append(report.Findings, types.ValidationFinding{
						Manifest: path,
						Severity: types.FindingError,
						Message:  err.Error(),
					})
					continue
				}
				return types.ValidationReport{}, err
			}
			report.Findings = append(report.Findings, probeManifest(sess, pkg)...)
		}
	}
	log.Ctx(ctx).Debug().
		Int("manifests", report.Manifests).
		Int("findings", len(report.Findings)).
		Msg("workspace validated")
	return report, nil
}

func probeManifest(sess session, pkg types.PackageJSON) []types.ValidationFinding {
	var findings []types.ValidationFinding
	for _, request := range exportRequests(pkg.Exports) {
		_, err := sess.matcher.ResolveExports(pkg, request)
		if finding, ok := findingFor(pkg, request, err); ok {
			findings = append(findings, finding)
		}
	}
	for _, entry := range pkg.Imports {
		if entry.Key.Kind != types.ExportsKeyPattern || strings.Contains(entry.Key.Value, "*") {
			continue
		}
		_, err := sess.matcher.ResolveImports(pkg, entry.Key.Value)
		if finding, ok := findingFor(pkg, entry.Key.Value, err); ok {
			findings = append(findings, finding)
		}
	}
	return findings
}

// exportRequests lists the literal subpaths an exports field defines.
// Wildcard keys cannot be probed without a concrete request.
func exportRequests(exports types.ExportsField) []string {
	switch {
	case exports.IsAbsent():
		return nil
	case exports.Kind == types.ExportsConditional && exports.Conditions.HasSubpathKeys():
		var requests []string
		for _, entry := range exports.Conditions {
			if !entry.Key.IsSubpath() || strings.Contains(entry.Key.Value, "*") {
				continue
			}
			if entry.Value.IsAbsent() {
				continue
			}
			requests = append(requests, entry.Key.String())
		}
		return requests
	default:
		return []string{"."}
	}
}

func findingFor(pkg types.PackageJSON, request string, err error) (types.ValidationFinding, bool) {
	switch {
	case err == nil:
		return types.ValidationFinding{}, false
	case core.IsKind(err, core.KindInvalidPackageTarget):
		return types.ValidationFinding{
			Manifest: pkg.Path(),
			Request:  request,
			Severity: types.FindingError,
			Message:  err.Error(),
		}, true
	default:
		return types.ValidationFinding{
			Manifest: pkg.Path(),
			Request:  request,
			Severity: types.FindingWarning,
			Message:  fmt.Sprintf("no target for enabled conditions: %v", err),
		}, true
	}
}
