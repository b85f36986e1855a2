package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"manifest-resolver/internal/app"
	"manifest-resolver/internal/types"
)

type resolveOptions struct {
	Kind       string
	Conditions []string
	ShowPaths  bool
}

func newExportsCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "exports <manifest> [subpath]",
		Short: "Resolve a package subpath through the exports field",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subpath := "."
			if len(args) > 1 {
				subpath = args[1]
			}
			return runResolve(cmd.Context(), cmd, opts, args[0], subpath, false)
		},
	}
	bindResolveFlags(cmd, &opts)
	return cmd
}

func newImportsCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "imports <manifest> <specifier>",
		Short: "Resolve a #-prefixed specifier through the imports field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, opts, args[0], args[1], true)
		},
	}
	bindResolveFlags(cmd, &opts)
	return cmd
}

func bindResolveFlags(cmd *cobra.Command, opts *resolveOptions) {
	cmd.Flags().StringVar(&opts.Kind, "kind", string(types.RequestKindImport), "Request kind (import or require)")
	cmd.Flags().StringSliceVar(&opts.Conditions, "condition", nil, "Additional condition names to enable")
	cmd.Flags().BoolVar(&opts.ShowPaths, "paths", false, "Print targets joined onto the package directory")
	_ = viper.BindPFlag("kind", cmd.Flags().Lookup("kind"))
	_ = viper.BindPFlag("conditions", cmd.Flags().Lookup("condition"))
	_ = viper.BindPFlag("paths", cmd.Flags().Lookup("paths"))
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions, manifest string, request string, imports bool) error {
	service := newAppService()
	req := app.ResolveRequest{
		Manifest:    manifest,
		Request:     request,
		Kind:        types.RequestKind(strings.ToLower(resolveString(cmd, opts.Kind, "kind", "kind"))),
		Target:      inheritedString(cmd, "target", "target"),
		Conditions:  resolveStrings(cmd, opts.Conditions, "conditions", "condition"),
		MaxDepth:    inheritedInt(cmd, "max_depth", "max-depth"),
		ProfilePath: inheritedString(cmd, "profile", "profile"),
	}
	var (
		result app.ResolveResult
		err    error
	)
	if imports {
		result, err = service.ResolveImports(ctx, req)
	} else {
		result, err = service.ResolveExports(ctx, req)
	}
	if err != nil {
		return err
	}
	printResolveResult(cmd.OutOrStdout(), result, resolveBool(cmd, opts.ShowPaths, "paths", "paths"))
	return nil
}

func printResolveResult(out io.Writer, result app.ResolveResult, showPaths bool) {
	entries := result.Targets
	if showPaths {
		entries = result.Paths
	}
	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}
}
