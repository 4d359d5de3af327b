package platforms

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/solarium-dev/solarium/logging"
	"github.com/solarium-dev/solarium/utils"
)

// hardhatPathsProbe is the javascript snippet piped into the hardhat console to dump the project's configured paths
// as JSON.
const hardhatPathsProbe = "console.log(JSON.stringify(config.paths));process.exit()"

// hardhatBuildInfoSubdirectory is the directory under the artifacts path where hardhat writes build-info documents.
const hardhatBuildInfoSubdirectory = "build-info"

// HardhatCompilationConfig describes the configuration options used to assemble a compilation session from a hardhat
// project.
type HardhatCompilationConfig struct {
	// Target describes the hardhat project directory to operate on.
	Target string `json:"target"`

	// UseNpx describes whether the hardhat binary should be invoked through npx.
	UseNpx bool `json:"useNpx"`

	// Command optionally overrides the base hardhat command name.
	Command string `json:"command,omitempty"`

	// BuildDirectory optionally overrides the directory searched for build-info documents. When empty, the
	// directory is derived from the project's configured artifacts path.
	BuildDirectory string `json:"buildDirectory,omitempty"`

	// WorkingDirectory optionally overrides the project root directory reported by hardhat, relative to Target.
	WorkingDirectory string `json:"workingDirectory,omitempty"`

	// IgnoreCompile describes whether the hardhat build command should be skipped, parsing whatever build-info
	// documents already exist.
	IgnoreCompile bool `json:"ignoreCompile"`

	// dependencyPaths memoizes dependency classification per reported path for this config. It is never global
	// state; each config instance carries its own.
	dependencyPaths map[string]bool
}

// NewHardhatCompilationConfig returns a HardhatCompilationConfig with default values for the provided target
// project directory.
func NewHardhatCompilationConfig(target string) *HardhatCompilationConfig {
	return &HardhatCompilationConfig{
		Target: target,
		UseNpx: true,
	}
}

// Platform returns the unique identifier of this compilation platform.
func (c *HardhatCompilationConfig) Platform() string {
	return "hardhat"
}

// GetTarget returns the target for compilation.
func (c *HardhatCompilationConfig) GetTarget() string {
	return c.Target
}

// SetTarget sets the new target for compilation.
func (c *HardhatCompilationConfig) SetTarget(newTarget string) {
	c.Target = newTarget
}

// IsHardhatProject returns a boolean indicating whether the provided directory looks like a hardhat project, judged
// by the presence of a hardhat config file.
func IsHardhatProject(target string) bool {
	return fileExistsAny(target, "hardhat.config.js", "hardhat.config.ts", "hardhat.config.cjs")
}

// IsDependencyPath returns a boolean indicating whether a reported source path refers to an installed dependency
// rather than project source, memoizing results in this config instance.
func (c *HardhatCompilationConfig) IsDependencyPath(path string) bool {
	if c.dependencyPaths == nil {
		c.dependencyPaths = make(map[string]bool)
	}
	if isDependency, ok := c.dependencyPaths[path]; ok {
		return isDependency
	}
	isDependency := pathHasSegment(path, "node_modules")
	c.dependencyPaths[path] = isDependency
	return isDependency
}

// Compile optionally runs the hardhat build command for the target project, then assembles a compilation session
// from the project's build-info documents. Returns the session, the build command output, and an error if one
// occurred.
func (c *HardhatCompilationConfig) Compile() (*types.Session, string, error) {
	logger := logging.GlobalLogger.NewSubLogger("platform", c.Platform())
	baseCommand := c.baseCommand()

	// Query the project's declared paths to locate the build directory and the project root.
	detectedPaths := c.detectPaths(baseCommand, logger)
	target := absoluteTarget(c.Target)

	buildDirectory := c.BuildDirectory
	if buildDirectory == "" {
		buildDirectory = filepath.Join(joinToolchainPath(target, detectedPaths["artifacts"]), hardhatBuildInfoSubdirectory)
	}
	workingDir := joinToolchainPath(target, detectedPaths["root"])

	// Run the build command unless we were asked to trust existing artifacts.
	var commandOutput string
	if !c.IgnoreCompile {
		cmd := exec.Command(baseCommand[0], append(baseCommand[1:], "compile", "--force")...)
		cmd.Dir = c.Target
		_, _, combined, err := utils.RunCommandWithOutputAndError(cmd)
		commandOutput = string(combined)
		if err != nil {
			return nil, commandOutput, fmt.Errorf("error while executing hardhat:\nOUTPUT:\n%s\nERROR: %s\n", commandOutput, err.Error())
		}
	}

	// Assemble the session from the discovered build-info documents.
	session := types.NewSession()
	if err := ParseBuildInfoDirectory(session, target, buildDirectory, workingDir); err != nil {
		return nil, commandOutput, err
	}
	return session, commandOutput, nil
}

// baseCommand returns the command line prefix used to invoke hardhat, honoring the npx and command overrides.
func (c *HardhatCompilationConfig) baseCommand() []string {
	commandName := "hardhat"
	if c.Command != "" {
		commandName = c.Command
	}
	if !c.UseNpx {
		return []string{commandName}
	}
	npx := "npx"
	if utils.IsWindowsEnvironment() {
		npx = "npx.cmd"
	}
	return []string{npx, commandName}
}

// detectPaths obtains the hardhat project's configured paths, merging the live configuration reported by the
// hardhat console over conventional defaults, then applying explicit config overrides. The console probe is best
// effort: any failure falls back to the defaults.
func (c *HardhatCompilationConfig) detectPaths(baseCommand []string, logger *logging.Logger) map[string]string {
	target := absoluteTarget(c.Target)
	paths := map[string]string{
		"root":      target,
		"sources":   filepath.Join(target, "contracts"),
		"cache":     filepath.Join(target, "cache"),
		"artifacts": filepath.Join(target, "artifacts"),
		"tests":     filepath.Join(target, "test"),
	}

	// Probe the live configuration through the hardhat console.
	cmd := exec.Command(baseCommand[0], append(baseCommand[1:], "console", "--no-compile")...)
	cmd.Dir = c.Target
	cmd.Stdin = strings.NewReader(hardhatPathsProbe)
	stdout, stderr, _, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil || len(stderr) > 0 {
		logger.Info("Could not query hardhat for its configured paths, using defaults")
	} else {
		var detected map[string]string
		if err := json.Unmarshal([]byte(strings.TrimSpace(string(stdout))), &detected); err != nil {
			logger.Info("Could not deserialize the hardhat paths configuration, using defaults")
		} else {
			for key, value := range detected {
				paths[key] = value
			}
		}
	}

	// Explicit overrides win over both defaults and detected values.
	if c.WorkingDirectory != "" {
		paths["root"] = filepath.Join(target, c.WorkingDirectory)
	}
	return paths
}

// pathHasSegment returns a boolean indicating whether the provided path contains the given segment as one of its
// components.
func pathHasSegment(path string, segment string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == segment {
			return true
		}
	}
	return false
}
