package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newGenerateCommand() *cobra.Command {
	opts := scanOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan dependency archives and write the system packages property and report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}
	addScanFlags(cmd, &opts)
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts scanOptions) error {
	service := newAppService()
	result, err := service.Generate(ctx, opts.request(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("generated: %s (%d packages, %d entries)\n", result.PropertiesPath, result.PackageCount, result.EntryCount)
	fmt.Printf("report: %s\n", result.ReportPath)
	if len(result.Conflicts) > 0 {
		fmt.Printf("split package conflicts: %d (see report)\n", len(result.Conflicts))
	}
	return nil
}
