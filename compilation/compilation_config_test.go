package compilation

import (
	"testing"

	"github.com/solarium-dev/solarium/compilation/platforms"
	"github.com/stretchr/testify/assert"
)

func TestSupportedCompilationPlatforms(t *testing.T) {
	supported := GetSupportedCompilationPlatforms()
	assert.Contains(t, supported, "hardhat")
	assert.Contains(t, supported, "foundry")

	assert.True(t, IsSupportedCompilationPlatform("hardhat"))
	assert.False(t, IsSupportedCompilationPlatform("truffle"))
}

func TestNewCompilationConfig(t *testing.T) {
	compilationConfig, err := NewCompilationConfig("hardhat")
	assert.NoError(t, err)
	assert.Equal(t, "hardhat", compilationConfig.Platform)
	assert.NotNil(t, compilationConfig.PlatformConfig)

	_, err = NewCompilationConfig("unknown-platform")
	assert.Error(t, err)
}

func TestCompilationConfig_PlatformConfigRoundtrip(t *testing.T) {
	// Platform-specific settings survive the generic wrapper.
	hardhatConfig := platforms.NewHardhatCompilationConfig("testdata/project")
	hardhatConfig.IgnoreCompile = true

	compilationConfig, err := NewCompilationConfigFromPlatformConfig(hardhatConfig)
	assert.NoError(t, err)
	assert.Equal(t, "hardhat", compilationConfig.Platform)

	platformConfig, err := compilationConfig.GetPlatformConfig()
	assert.NoError(t, err)
	restored, ok := platformConfig.(*platforms.HardhatCompilationConfig)
	assert.True(t, ok)
	assert.Equal(t, "testdata/project", restored.Target)
	assert.True(t, restored.IgnoreCompile)
}

func TestCompilationConfig_UpdatePlatformConfig(t *testing.T) {
	compilationConfig, err := NewCompilationConfig("foundry")
	assert.NoError(t, err)

	platformConfig, err := compilationConfig.GetPlatformConfig()
	assert.NoError(t, err)
	platformConfig.SetTarget("contracts/project")
	assert.NoError(t, compilationConfig.UpdatePlatformConfig(platformConfig))

	updated, err := compilationConfig.GetPlatformConfig()
	assert.NoError(t, err)
	assert.Equal(t, "contracts/project", updated.GetTarget())
}
