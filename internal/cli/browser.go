package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"manifest-resolver/internal/app"
)

type browserOptions struct {
	Path    string
	Request string
}

func newBrowserCommand() *cobra.Command {
	opts := browserOptions{}
	cmd := &cobra.Command{
		Use:   "browser <manifest>",
		Short: "Apply the browser alias fields to a path or bare request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd.Context(), cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Path, "path", "", "File path, relative to the package directory or absolute")
	cmd.Flags().StringVar(&opts.Request, "request", "", "Bare module request")
	cmd.MarkFlagsMutuallyExclusive("path", "request")
	cmd.MarkFlagsOneRequired("path", "request")
	return cmd
}

func runBrowser(ctx context.Context, cmd *cobra.Command, opts browserOptions, manifest string) error {
	service := newAppService()
	result, err := service.ResolveBrowser(ctx, app.BrowserRequest{
		Manifest:    manifest,
		Path:        opts.Path,
		Request:     opts.Request,
		ProfilePath: inheritedString(cmd, "profile", "profile"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case result.Ignored:
		fmt.Fprintln(out, "ignored")
	case result.Found:
		fmt.Fprintln(out, result.Alias)
	default:
		fmt.Fprintln(out, "no alias")
	}
	return nil
}
