package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/solarium-dev/solarium/cmd/exitcodes"
	"github.com/solarium-dev/solarium/compilation"
	"github.com/solarium-dev/solarium/compilation/cache"
	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/solarium-dev/solarium/config"
	"github.com/solarium-dev/solarium/logging"
	"github.com/solarium-dev/solarium/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// parseCmd represents the command provider for parsing build artifacts into a compilation model
var parseCmd = &cobra.Command{
	Use:               "parse",
	Short:             "Compiles the target and assembles its compilation model",
	Long:              `Compiles the target and assembles its compilation model`,
	Args:              cmdValidateParseArgs,
	ValidArgsFunction: cmdValidParseArgs,
	RunE:              cmdRunParse,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the parse command
	err := addParseFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the parse command", err)
	}

	// Add the parse command and its associated flags to the root command
	rootCmd.AddCommand(parseCmd)
}

// cmdValidParseArgs will return which flags and sub-commands are valid for dynamic completion for the parse command
func cmdValidParseArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// When adding a flag to a command, include the "--" prefix to indicate that it is a flag
			// and not a positional argument.
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	// Provide a list of flags that can be used in the current command (but have not been used yet)
	// for autocompletion suggestions
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateParseArgs makes sure that there are no positional arguments provided to the parse command
func cmdValidateParseArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("parse does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the parse command", err)
		return err
	}
	return nil
}

// cmdRunParse executes the CLI parse command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (solarium.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If solarium.json can't be found, use the default project configuration.
func cmdRunParse(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the parse command", err)
		return err
	}

	// If --config was not used, look for `solarium.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the parse command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		// Try to read the configuration file and throw an error if something goes wrong
		cmdLogger.Info("Reading the configuration file at: ", configPath)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the parse command", err)
			return err
		}
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed && existenceError != nil {
		cmdLogger.Error("Failed to run the parse command", existenceError)
		return existenceError
	}

	// Possibility #3: We couldn't find a project configuration file at all, so use the default one
	if !configFlagUsed && existenceError != nil {
		cmdLogger.Warn("Unable to find the config file. Using default project configuration for the " + DefaultCompilationPlatform + " platform instead")
		projectConfig, err = config.GetDefaultProjectConfig(DefaultCompilationPlatform)
		if err != nil {
			cmdLogger.Error("Failed to run the parse command", err)
			return err
		}
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithParseFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the parse command", err)
		return err
	}

	// Validate the project config artifacts one last time before running
	err = projectConfig.Validate()
	if err != nil {
		cmdLogger.Error("Invalid project configuration", err)
		return err
	}

	// Update the log level of the global logger from our project configuration and enable terminal output
	logging.GlobalLogger.SetLevel(projectConfig.LogLevel())
	logging.GlobalLogger.EnableConsole()

	// If a log directory is configured, mirror structured log output into a file there
	if projectConfig.Logging.LogDirectory != "" {
		file, err := utils.CreateFile(projectConfig.Logging.LogDirectory, "solarium.log")
		if err != nil {
			cmdLogger.Error("Failed to create log file", err)
			return err
		}
		defer file.Close()
		logging.GlobalLogger.AddWriter(file)
	}

	// Change our working directory to the directory containing the configuration file, so that any relative paths
	// in it resolve against the project folder
	if existenceError == nil {
		err = os.Chdir(filepath.Dir(configPath))
		if err != nil {
			cmdLogger.Error("Failed to run the parse command", err)
			return err
		}
	}

	// Compile the target and assemble the compilation model
	cmdLogger.Info("Compiling targets with ", projectConfig.Compilation.Platform)
	session, compilationOutput, err := projectConfig.Compilation.Compile()
	if err != nil {
		cmdLogger.Debug(compilationOutput)
		cmdLogger.Error("Failed to compile the target", err)
		if types.IsCompilationInvalid(err) {
			return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeCompilationFailed)
		}
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Produce the exported form of the model and its artifact hash
	exported := compilation.ExportSession(session)
	artifactHash := compilation.ComputeArtifactHash(session)

	// If caching was requested, record the model under its artifact hash so subsequent identical builds are
	// recognized
	useCache, err := cmd.Flags().GetBool("use-cache")
	if err != nil {
		cmdLogger.Error("Failed to run the parse command", err)
		return err
	}
	if useCache {
		err = recordSessionInCache(artifactHash, exported)
		if err != nil {
			cmdLogger.Error("Failed to update the model cache", err)
			return err
		}
	}

	// If an export path was provided, write the exported model there as JSON
	exportPath, err := cmd.Flags().GetString("export")
	if err != nil {
		cmdLogger.Error("Failed to run the parse command", err)
		return err
	}
	if exportPath != "" {
		err = writeExportedSession(exportPath, exported)
		if err != nil {
			cmdLogger.Error("Failed to export the compilation model", err)
			return err
		}
		cmdLogger.Info("Compilation model exported to: ", exportPath)
	}

	// Log a summary of the assembled model
	logSessionSummary(projectConfig, session)
	return nil
}

// recordSessionInCache stores the exported compilation model in the on-disk model cache, keyed by its artifact hash.
// If a model is already recorded under the same hash, the build produced no new artifacts and the cache is left
// untouched. Returns an error if one occurs.
func recordSessionInCache(artifactHash string, exported *compilation.ExportedSession) error {
	modelCache, err := cache.Open(filepath.Join(".solarium", cache.DefaultCacheFileName))
	if err != nil {
		return err
	}
	defer modelCache.Close()

	cached, err := modelCache.Has(artifactHash)
	if err != nil {
		return err
	}
	if cached {
		cmdLogger.Info("No new artifacts produced, compilation model matches the cached one")
		return nil
	}

	err = modelCache.Put(artifactHash, exported)
	if err != nil {
		return err
	}
	cmdLogger.Info("New artifacts produced, compilation model cached under hash: ", artifactHash)
	return nil
}

// writeExportedSession writes the exported compilation model as indented JSON to the provided path, creating parent
// directories as needed. Returns an error if one occurs.
func writeExportedSession(path string, exported *compilation.ExportedSession) error {
	data, err := json.MarshalIndent(exported, "", "\t")
	if err != nil {
		return err
	}
	err = utils.MakeDirectoryForFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// logSessionSummary logs per-unit counts of sources and contracts in the assembled model, splitting project sources
// from external dependencies per the platform's layout conventions.
func logSessionSummary(projectConfig *config.ProjectConfig, session *types.Session) {
	platformConfig, err := projectConfig.Compilation.GetPlatformConfig()
	if err != nil {
		// Summary logging is best-effort, compilation itself already succeeded.
		cmdLogger.Debug("Could not obtain the platform config for the model summary", err)
		return
	}

	for _, unit := range session.CompilationUnits() {
		sourceCount := 0
		dependencyCount := 0
		contractCount := 0
		for _, filename := range unit.Filenames() {
			if platformConfig.IsDependencyPath(filename.Absolute) {
				dependencyCount++
			} else {
				sourceCount++
			}
			contractCount += len(unit.ContractsForFilename(filename))
		}
		cmdLogger.Info(fmt.Sprintf("Compilation unit '%s': %d project sources, %d dependency sources, %d contracts", unit.UniqID(), sourceCount, dependencyCount, contractCount))
	}
}
