package platforms

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/solarium-dev/solarium/utils"
)

// FoundryCompilationConfig describes the configuration options used to assemble a compilation session from a foundry
// project. Foundry emits build-info documents in the hardhat schema, so parsing is shared with the hardhat platform.
type FoundryCompilationConfig struct {
	// Target describes the foundry project directory to operate on.
	Target string `json:"target"`

	// BuildDirectory optionally overrides the directory searched for build-info documents. When empty, foundry's
	// conventional out/build-info directory is used.
	BuildDirectory string `json:"buildDirectory,omitempty"`

	// IgnoreCompile describes whether the forge build command should be skipped, parsing whatever build-info
	// documents already exist.
	IgnoreCompile bool `json:"ignoreCompile"`

	// dependencyPaths memoizes dependency classification per reported path for this config.
	dependencyPaths map[string]bool
}

// NewFoundryCompilationConfig returns a FoundryCompilationConfig with default values for the provided target project
// directory.
func NewFoundryCompilationConfig(target string) *FoundryCompilationConfig {
	return &FoundryCompilationConfig{
		Target: target,
	}
}

// Platform returns the unique identifier of this compilation platform.
func (c *FoundryCompilationConfig) Platform() string {
	return "foundry"
}

// GetTarget returns the target for compilation.
func (c *FoundryCompilationConfig) GetTarget() string {
	return c.Target
}

// SetTarget sets the new target for compilation.
func (c *FoundryCompilationConfig) SetTarget(newTarget string) {
	c.Target = newTarget
}

// IsFoundryProject returns a boolean indicating whether the provided directory looks like a foundry project, judged
// by the presence of its config file.
func IsFoundryProject(target string) bool {
	return fileExistsAny(target, "foundry.toml")
}

// IsDependencyPath returns a boolean indicating whether a reported source path refers to an installed dependency.
// Foundry installs dependencies under lib/ and node_modules/.
func (c *FoundryCompilationConfig) IsDependencyPath(path string) bool {
	if c.dependencyPaths == nil {
		c.dependencyPaths = make(map[string]bool)
	}
	if isDependency, ok := c.dependencyPaths[path]; ok {
		return isDependency
	}
	isDependency := pathHasSegment(path, "lib") || pathHasSegment(path, "node_modules")
	c.dependencyPaths[path] = isDependency
	return isDependency
}

// Compile optionally runs forge build for the target project, then assembles a compilation session from the
// project's build-info documents. Returns the session, the build command output, and an error if one occurred.
func (c *FoundryCompilationConfig) Compile() (*types.Session, string, error) {
	target := absoluteTarget(c.Target)
	buildDirectory := c.BuildDirectory
	if buildDirectory == "" {
		buildDirectory = filepath.Join(target, "out", hardhatBuildInfoSubdirectory)
	}

	// Run the build command unless we were asked to trust existing artifacts.
	var commandOutput string
	if !c.IgnoreCompile {
		cmd := exec.Command("forge", "build", "--build-info", "--force")
		cmd.Dir = c.Target
		_, _, combined, err := utils.RunCommandWithOutputAndError(cmd)
		commandOutput = string(combined)
		if err != nil {
			return nil, commandOutput, fmt.Errorf("error while executing forge:\nOUTPUT:\n%s\nERROR: %s\n", commandOutput, err.Error())
		}
	}

	// Foundry resolves source paths from the project directory itself.
	session := types.NewSession()
	if err := ParseBuildInfoDirectory(session, target, buildDirectory, target); err != nil {
		return nil, commandOutput, err
	}
	return session, commandOutput, nil
}
