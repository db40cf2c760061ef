package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"system-packages/internal/app"
	"system-packages/internal/core"
)

// scanOptions are the flags shared by generate and validate.
type scanOptions struct {
	Artifacts        string
	OutputDir        string
	PropertyName     string
	ExcludeArtifacts []string
	ExcludePackages  []string
	Overrides        []string
	Workers          int
}

func addScanFlags(cmd *cobra.Command, opts *scanOptions) {
	cmd.Flags().StringVar(&opts.Artifacts, "artifacts", "", "Artifact list yaml")
	cmd.Flags().StringVar(&opts.OutputDir, "output", app.DefaultOutputDir, "Output directory")
	cmd.Flags().StringVar(&opts.PropertyName, "property-name", core.DefaultPropertyName, "Framework property to generate")
	cmd.Flags().StringSliceVar(&opts.ExcludeArtifacts, "exclude-artifact", app.DefaultExcludeArtifacts, "Artifact exclusion pattern (group:artifact, trailing * allowed)")
	cmd.Flags().StringSliceVar(&opts.ExcludePackages, "exclude-package", app.DefaultExcludePackages, "Package exclusion pattern (trailing * allowed)")
	cmd.Flags().StringArrayVar(&opts.Overrides, "override", nil, "Version override as pattern=version")
	cmd.Flags().IntVar(&opts.Workers, "workers", app.DefaultWorkers, "Archives scanned in parallel")
	_ = viper.BindPFlag("artifacts", cmd.Flags().Lookup("artifacts"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("property_name", cmd.Flags().Lookup("property-name"))
	_ = viper.BindPFlag("exclude_artifacts", cmd.Flags().Lookup("exclude-artifact"))
	_ = viper.BindPFlag("exclude_packages", cmd.Flags().Lookup("exclude-package"))
	_ = viper.BindPFlag("version_overrides", cmd.Flags().Lookup("override"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
}

func (o scanOptions) request(cmd *cobra.Command) app.GenerateRequest {
	return app.GenerateRequest{
		ArtifactsPath:    resolveString(cmd, o.Artifacts, "artifacts", "artifacts"),
		OutputDir:        resolveString(cmd, o.OutputDir, "output", "output"),
		PropertyName:     resolveString(cmd, o.PropertyName, "property_name", "property-name"),
		ExcludeArtifacts: resolveStrings(cmd, o.ExcludeArtifacts, "exclude_artifacts", "exclude-artifact"),
		ExcludePackages:  resolveStrings(cmd, o.ExcludePackages, "exclude_packages", "exclude-package"),
		VersionOverrides: resolveStrings(cmd, o.Overrides, "version_overrides", "override"),
		Workers:          resolveInt(cmd, o.Workers, "workers", "workers"),
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || name == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
