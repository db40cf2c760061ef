package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"system-packages/internal/app"
	"system-packages/internal/core"
)

type validateOptions struct {
	scanOptions
	Baseline string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Regenerate the system packages and compare them with a baseline properties file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	addScanFlags(cmd, &opts.scanOptions)
	cmd.Flags().StringVar(&opts.Baseline, "baseline", "", "Baseline properties file")
	_ = viper.BindPFlag("baseline", cmd.Flags().Lookup("baseline"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		GenerateRequest: opts.request(cmd),
		BaselinePath:    resolveString(cmd, opts.Baseline, "baseline", "baseline"),
	})
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition {
			for _, line := range core.DiffLines(result.Validation) {
				fmt.Fprintln(os.Stderr, line)
			}
			if result.Validation.UnifiedDiff != "" {
				fmt.Fprint(os.Stderr, result.Validation.UnifiedDiff)
			}
		}
		return err
	}
	fmt.Printf("validated: %s matches baseline (%d packages, %d entries)\n",
		result.Generate.PropertiesPath, result.Generate.PackageCount, result.Generate.EntryCount)
	return nil
}
