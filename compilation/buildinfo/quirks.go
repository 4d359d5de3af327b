package buildinfo

import (
	"github.com/Masterminds/semver"
	"github.com/solarium-dev/solarium/compilation/types"
)

// unreliableSourcePathVersions enumerates the exact solc releases known to report per-source paths unreliably in
// build-info output. For these releases the "sources" section path field must be replaced with the resolved build
// entry-point path. This is a documented quirk of these specific releases, not a property of version ordering, so
// the set is a closed enumeration rather than a range check.
var unreliableSourcePathVersions = mustParseVersions(
	"0.4.0",
	"0.4.1",
	"0.4.2",
	"0.4.3",
	"0.4.4",
	"0.4.5",
	"0.4.6",
	"0.4.7",
	"0.4.8",
	"0.4.9",
)

// RequiresEntrypointOverride indicates whether the per-source paths reported by the given compiler cannot be trusted
// and must be overridden with the resolved build entry-point path. It returns true exactly for the solc releases in
// unreliableSourcePathVersions; every other platform/version pair returns false. Version strings which do not parse
// as semantic versions fall outside the enumerated set.
func RequiresEntrypointOverride(platform types.CompilerPlatform, versionString string) bool {
	if platform != types.CompilerPlatformSolc {
		return false
	}
	version, err := semver.NewVersion(versionString)
	if err != nil {
		return false
	}
	for _, unreliable := range unreliableSourcePathVersions {
		if version.Equal(unreliable) {
			return true
		}
	}
	return false
}

// mustParseVersions parses the provided semantic version strings, panicking on failure. It is used only to build the
// package-level quirk enumeration from known-good literals.
func mustParseVersions(versionStrings ...string) []*semver.Version {
	versions := make([]*semver.Version, len(versionStrings))
	for i, versionString := range versionStrings {
		version, err := semver.NewVersion(versionString)
		if err != nil {
			panic(err)
		}
		versions[i] = version
	}
	return versions
}
