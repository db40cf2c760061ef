package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"system-packages/internal/adapters"
	"system-packages/internal/app"
	"system-packages/internal/core"
)

type inspectOptions struct {
	File         string
	OutputDir    string
	PropertyName string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a generated system packages properties file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Properties file (defaults to the one in --output)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", app.DefaultOutputDir, "Output directory")
	cmd.Flags().StringVar(&opts.PropertyName, "property-name", core.DefaultPropertyName, "Property to read")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("property_name", cmd.Flags().Lookup("property-name"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	path := opts.File
	if path == "" {
		path = filepath.Join(resolveString(cmd, opts.OutputDir, "output", "output"), adapters.SystemPackagesFile)
	}
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		Path:         path,
		PropertyName: resolveString(cmd, opts.PropertyName, "property_name", "property-name"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d packages, %d entries\n", result.PropertyName, result.PackageCount, result.EntryCount)
	if len(result.MultiVersion) > 0 {
		fmt.Println("packages exported at more than one version:")
		for _, pkg := range result.MultiVersion {
			fmt.Printf("- %s: %s\n", pkg.Name, strings.Join(pkg.Versions, ", "))
		}
	}
	return nil
}
