package platforms

import "github.com/solarium-dev/solarium/compilation/types"

// PlatformConfig describes the interface all compilation platform configs must implement. A platform owns the
// out-of-model concerns of one toolchain family: invoking its build command, locating its build-info documents, and
// querying its declared configuration paths. The assembled session is the only thing it hands back to consumers.
type PlatformConfig interface {
	// Compile runs the platform's build pipeline (unless configured not to) and assembles a session from the
	// resulting build-info documents. Returns the session, any toolchain command output, and an error if one
	// occurred.
	Compile() (*types.Session, string, error)

	// Platform returns the unique identifier of this compilation platform.
	Platform() string

	// GetTarget returns the target for compilation.
	GetTarget() string

	// SetTarget sets the new target for compilation.
	SetTarget(string)

	// IsDependencyPath indicates whether the provided source file path refers to an external dependency of the
	// target project rather than one of its own sources, per this platform's layout conventions.
	IsDependencyPath(path string) bool
}
