package cmd

import (
	"fmt"

	"github.com/solarium-dev/solarium/compilation"
	"github.com/solarium-dev/solarium/config"
	"github.com/spf13/cobra"
)

// addParseFlags adds the various flags for the parse command
func addParseFlags() error {
	// Config file path
	parseCmd.Flags().String("config", "", "path to config file")

	// Target file / directory
	parseCmd.Flags().String("target", "", TargetFlagDescription)

	// Compilation platform
	parseCmd.Flags().String("platform", "",
		fmt.Sprintf("compilation platform to use (default is \"%s\")", DefaultCompilationPlatform))

	// Export path for the assembled model
	parseCmd.Flags().String("export", "", "path to write the assembled compilation model as JSON")

	// Model cache toggle
	parseCmd.Flags().Bool("use-cache", false, "record the assembled model in the on-disk model cache")

	return nil
}

// updateProjectConfigWithParseFlags will update the given projectConfig with any CLI arguments that were provided to
// the parse command
func updateProjectConfigWithParseFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// If --platform was used, replace the compilation config with the default one for the requested platform. The
	// previously configured target carries over, any other platform-specific settings do not.
	if cmd.Flags().Changed("platform") {
		platform, err := cmd.Flags().GetString("platform")
		if err != nil {
			return err
		}

		previousPlatformConfig, err := projectConfig.Compilation.GetPlatformConfig()
		if err != nil {
			return err
		}

		compilationConfig, err := compilation.NewCompilationConfig(platform)
		if err != nil {
			return err
		}
		projectConfig.Compilation = compilationConfig

		platformConfig, err := projectConfig.Compilation.GetPlatformConfig()
		if err != nil {
			return err
		}
		platformConfig.SetTarget(previousPlatformConfig.GetTarget())
		err = projectConfig.Compilation.UpdatePlatformConfig(platformConfig)
		if err != nil {
			return err
		}
	}

	// Update target if necessary
	err := updateCompilationTarget(cmd, projectConfig)
	if err != nil {
		return err
	}

	return nil
}
