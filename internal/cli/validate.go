package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"manifest-resolver/internal/app"
	"manifest-resolver/internal/types"
)

type validateOptions struct {
	Kind          string
	Conditions    []string
	FailOnWarning bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [root...]",
		Short: "Check every package.json under the given workspace roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = resolveStrings(cmd, nil, "workspace", "")
			}
			if len(roots) == 0 {
				roots = []string{"."}
			}
			return runValidate(cmd.Context(), cmd, opts, roots)
		},
	}
	cmd.Flags().StringVar(&opts.Kind, "kind", string(types.RequestKindImport), "Request kind (import or require)")
	cmd.Flags().StringSliceVar(&opts.Conditions, "condition", nil, "Additional condition names to enable")
	cmd.Flags().BoolVar(&opts.FailOnWarning, "fail-on-warning", false, "Treat warnings as failures")
	_ = viper.BindPFlag("fail_on_warning", cmd.Flags().Lookup("fail-on-warning"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions, roots []string) error {
	service := newAppService()
	report, err := service.Validate(ctx, app.ValidateRequest{
		Roots:       roots,
		ProfilePath: inheritedString(cmd, "profile", "profile"),
		Kind:        types.RequestKind(resolveString(cmd, opts.Kind, "kind", "kind")),
		Target:      inheritedString(cmd, "target", "target"),
		Conditions:  resolveStrings(cmd, opts.Conditions, "conditions", "condition"),
		MaxDepth:    inheritedInt(cmd, "max_depth", "max-depth"),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	warnings := 0
	for _, finding := range report.Findings {
		if finding.Severity == types.FindingWarning {
			warnings++
		}
		if finding.Request != "" {
			fmt.Fprintf(out, "%s %s %s: %s\n", finding.Severity, finding.Manifest, finding.Request, finding.Message)
			continue
		}
		fmt.Fprintf(out, "%s %s: %s\n", finding.Severity, finding.Manifest, finding.Message)
	}
	fmt.Fprintf(out, "validated %d manifests, %d findings\n", report.Manifests, len(report.Findings))

	failOnWarning := resolveBool(cmd, opts.FailOnWarning, "fail_on_warning", "fail-on-warning")
	if report.HasErrors() || (failOnWarning && warnings > 0) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("validation failed: %d findings", len(report.Findings)))
	}
	return nil
}
