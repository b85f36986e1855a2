package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type ResolveErrorKind string

const (
	// KindNotExported means the requested subpath has no matching
	// "exports" entry, including an absent field or a null subtree.
	KindNotExported ResolveErrorKind = "not_exported"
	// KindImportNotDefined is the "imports" counterpart of KindNotExported.
	KindImportNotDefined ResolveErrorKind = "import_not_defined"
	// KindInvalidPackageTarget means a target string breaks the path
	// safety or pattern capture rules.
	KindInvalidPackageTarget ResolveErrorKind = "invalid_package_target"
	// KindIgnored signals a browser field mapping to false. The module
	// resolves to an empty stand-in rather than failing.
	KindIgnored ResolveErrorKind = "ignored"
)

// ResolveError describes a failure of the target matcher or the browser
// alias resolver. Exported functions return it as the cause of an
// errbuilder error; use IsKind or errors.As to inspect it.
type ResolveError struct {
	Kind     ResolveErrorKind
	Manifest string
	Request  string
	Target   string
	Path     string
	Reason   string
}

func (e *ResolveError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case KindNotExported:
		b.WriteString("package subpath is not exported")
	case KindImportNotDefined:
		b.WriteString("package import specifier is not defined")
	case KindInvalidPackageTarget:
		b.WriteString("invalid package target")
	case KindIgnored:
		b.WriteString("module ignored by browser field")
	default:
		b.WriteString(string(e.Kind))
	}
	if e.Request != "" {
		fmt.Fprintf(&b, " request=%q", e.Request)
	}
	if e.Target != "" {
		fmt.Fprintf(&b, " target=%q", e.Target)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " path=%s", e.Path)
	}
	if e.Manifest != "" {
		fmt.Fprintf(&b, " manifest=%s", e.Manifest)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// IsKind reports whether err carries a ResolveError of the given kind.
func IsKind(err error, kind ResolveErrorKind) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr) && resolveErr.Kind == kind
}

// IgnoredPath returns the path of an ignored module when err signals one.
func IgnoredPath(err error) (string, bool) {
	var resolveErr *ResolveError
	if errors.As(err, &resolveErr) && resolveErr.Kind == KindIgnored {
		return resolveErr.Path, true
	}
	return "", false
}

// coded wraps a *ResolveError in an errbuilder error carrying the code the
// CLI maps to an exit status. Other errors pass through unchanged.
func coded(err error) error {
	var resolveErr *ResolveError
	if err == nil || !errors.As(err, &resolveErr) {
		return err
	}
	builder := errbuilder.New()
	switch resolveErr.Kind {
	case KindNotExported, KindImportNotDefined:
		builder = builder.WithCode(errbuilder.CodeNotFound)
	case KindInvalidPackageTarget, KindIgnored:
		builder = builder.WithCode(errbuilder.CodeFailedPrecondition)
	default:
		builder = builder.WithCode(errbuilder.CodeInternal)
	}
	return builder.
		WithMsg(resolveErr.Error()).
		WithCause(resolveErr)
}

func notExported() *ResolveError {
	return &ResolveError{Kind: KindNotExported}
}

func invalidTarget(target string, reason string) *ResolveError {
	return &ResolveError{Kind: KindInvalidPackageTarget, Target: target, Reason: reason}
}

// ParseError reports a package.json whose shape is incompatible with the
// resolution fields. The manifest cannot be used at all. The loader
// returns it as the cause of a CodeInvalidArgument error.
type ParseError struct {
	Path   string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to parse %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("failed to parse %s: field %q: %s", e.Path, e.Field, e.Reason)
}

func parseFailure(path string, field string, reason string) error {
	parseErr := &ParseError{Path: path, Field: field, Reason: reason}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(parseErr.Error()).
		WithCause(parseErr)
}

func IsParseFailure(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
