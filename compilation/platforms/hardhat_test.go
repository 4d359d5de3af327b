package platforms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHardhatProject(t *testing.T) {
	// Any of the hardhat config file variants marks a project.
	for _, configName := range []string{"hardhat.config.js", "hardhat.config.ts", "hardhat.config.cjs"} {
		directory := t.TempDir()
		assert.False(t, IsHardhatProject(directory))
		assert.NoError(t, os.WriteFile(filepath.Join(directory, configName), []byte("module.exports = {};"), 0644))
		assert.True(t, IsHardhatProject(directory), configName)
	}

	// A directory named like the config file does not count.
	directory := t.TempDir()
	assert.NoError(t, os.Mkdir(filepath.Join(directory, "hardhat.config.js"), 0755))
	assert.False(t, IsHardhatProject(directory))
}

func TestHardhatIsDependencyPath(t *testing.T) {
	config := NewHardhatCompilationConfig(".")
	assert.True(t, config.UseNpx)

	assert.True(t, config.IsDependencyPath("node_modules/@openzeppelin/contracts/token/ERC20.sol"))
	assert.True(t, config.IsDependencyPath(filepath.Join("/srv/project", "node_modules", "dep", "Dep.sol")))
	assert.False(t, config.IsDependencyPath("contracts/Token.sol"))

	// Only whole path segments count.
	assert.False(t, config.IsDependencyPath("contracts/node_modules_like/Token.sol"))

	// Memoized answers stay stable on repeat queries.
	assert.True(t, config.IsDependencyPath("node_modules/@openzeppelin/contracts/token/ERC20.sol"))
}

func TestIsFoundryProject(t *testing.T) {
	directory := t.TempDir()
	assert.False(t, IsFoundryProject(directory))
	assert.NoError(t, os.WriteFile(filepath.Join(directory, "foundry.toml"), []byte("[profile.default]"), 0644))
	assert.True(t, IsFoundryProject(directory))
}

func TestFoundryIsDependencyPath(t *testing.T) {
	config := NewFoundryCompilationConfig(".")

	// Foundry projects vendor dependencies under lib/, but node_modules installs count too.
	assert.True(t, config.IsDependencyPath("lib/forge-std/src/Test.sol"))
	assert.True(t, config.IsDependencyPath("node_modules/@openzeppelin/contracts/token/ERC20.sol"))
	assert.False(t, config.IsDependencyPath("src/Token.sol"))
	assert.False(t, config.IsDependencyPath("src/library/Token.sol"))
}

func TestJoinToolchainPath(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "srv", "project")

	// Relative reported paths anchor at the base; absolute ones are used as-is.
	assert.Equal(t, filepath.Join(base, "artifacts"), joinToolchainPath(base, "artifacts"))
	absolute := filepath.Join(string(filepath.Separator), "elsewhere", "artifacts")
	assert.Equal(t, absolute, joinToolchainPath(base, absolute))
}
