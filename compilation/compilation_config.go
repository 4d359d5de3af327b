package compilation

import (
	"encoding/json"
	"fmt"

	"github.com/solarium-dev/solarium/compilation/platforms"
	"github.com/solarium-dev/solarium/compilation/types"
)

// CompilationConfig describes the configuration options used to assemble the compilation model of a smart contract
// target.
type CompilationConfig struct {
	// Platform references an identifier indicating which compilation platform to use.
	// PlatformConfig is a structure dependent on the defined Platform.
	Platform string `json:"platform"`

	// PlatformConfig describes the Platform-specific configuration needed to compile.
	PlatformConfig *json.RawMessage `json:"platformConfig"`
}

// NewCompilationConfig returns a CompilationConfig with default values for a given platform identifier. If an error
// occurs, it is returned instead.
func NewCompilationConfig(platform string) (*CompilationConfig, error) {
	// Verify the platform is valid
	if !IsSupportedCompilationPlatform(platform) {
		return nil, fmt.Errorf("could not get default compilation configs: platform '%s' is unsupported", platform)
	}

	// Obtain the default platform config and wrap it generically.
	platformConfig := GetDefaultPlatformConfig(platform)
	return NewCompilationConfigFromPlatformConfig(platformConfig)
}

// NewCompilationConfigFromPlatformConfig takes a platforms.PlatformConfig and wraps it in a generic
// CompilationConfig. This allows many platform config types to be serialized/deserialized to their appropriate types
// and supported generally.
func NewCompilationConfigFromPlatformConfig(platformConfig platforms.PlatformConfig) (*CompilationConfig, error) {
	// Marshal our config to a raw message
	b, err := json.Marshal(platformConfig)
	if err != nil {
		return nil, err
	}
	platformConfigMsg := (*json.RawMessage)(&b)

	// Return the compilation configs containing our platform-specific configs
	return &CompilationConfig{Platform: platformConfig.Platform(), PlatformConfig: platformConfigMsg}, nil
}

// GetPlatformConfig deserializes the inner platform-specific configuration and returns it, or an error if one
// occurs.
func (c *CompilationConfig) GetPlatformConfig() (platforms.PlatformConfig, error) {
	// Verify the platform is valid
	if !IsSupportedCompilationPlatform(c.Platform) {
		return nil, fmt.Errorf("could not obtain platform configs: platform '%s' is unsupported", c.Platform)
	}

	// Allocate a platform config given our platform string in our compilation config
	// It is necessary to do so as json.Unmarshal needs a concrete structure to populate
	platformConfig := GetDefaultPlatformConfig(c.Platform)
	if c.PlatformConfig != nil {
		if err := json.Unmarshal(*c.PlatformConfig, &platformConfig); err != nil {
			return nil, err
		}
	}
	return platformConfig, nil
}

// UpdatePlatformConfig re-serializes the provided platform-specific configuration into this CompilationConfig.
func (c *CompilationConfig) UpdatePlatformConfig(platformConfig platforms.PlatformConfig) error {
	b, err := json.Marshal(platformConfig)
	if err != nil {
		return err
	}
	c.PlatformConfig = (*json.RawMessage)(&b)
	return nil
}

// Compile deserializes the inner platform-specific configuration, which is then used to assemble the compilation
// session for the underlying target. Returns the session, any toolchain command output, and an error if one
// occurred.
func (c *CompilationConfig) Compile() (*types.Session, string, error) {
	platformConfig, err := c.GetPlatformConfig()
	if err != nil {
		return nil, "", err
	}
	return platformConfig.Compile()
}
