package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"manifest-resolver/internal/app"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "Show the resolution fields of a package.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0])
		},
	}
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, manifest string) error {
	service := newAppService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		Manifest:    manifest,
		ProfilePath: inheritedString(cmd, "profile", "profile"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	name := result.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(out, "name: %s\n", name)
	fmt.Fprintf(out, "directory: %s\n", result.Directory)
	if len(result.MainFields) > 0 {
		fmt.Fprintf(out, "main: %s\n", strings.Join(result.MainFields, ", "))
	}
	fmt.Fprintf(out, "exports: %s\n", result.ExportsKind)
	for _, key := range result.ExportKeys {
		fmt.Fprintf(out, "- %s\n", key)
	}
	fmt.Fprintf(out, "imports: %d\n", len(result.ImportKeys))
	for _, key := range result.ImportKeys {
		fmt.Fprintf(out, "- %s\n", key)
	}
	for _, browser := range result.Browser {
		fmt.Fprintf(out, "browser: %s\n", browser)
	}
	return nil
}
