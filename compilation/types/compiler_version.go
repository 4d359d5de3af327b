package types

// CompilerPlatform describes a supported compiler family. Build toolchains report a free-form language tag; this type
// models the closed set of families the compilation model distinguishes, so that adding support for a new family is a
// conscious code change rather than a silent misclassification.
type CompilerPlatform string

const (
	// CompilerPlatformSolc describes the Solidity compiler family.
	CompilerPlatformSolc CompilerPlatform = "solc"

	// CompilerPlatformVyper describes the Vyper compiler family. It also serves as the designated fallback for any
	// language tag the model does not recognize.
	CompilerPlatformVyper CompilerPlatform = "vyper"
)

// solidityLanguageTag is the language indicator hardhat-like build-info documents report for Solidity input.
const solidityLanguageTag = "Solidity"

// CompilerPlatformFromLanguage maps a build-info document's language tag onto a CompilerPlatform. The Solidity tag
// maps to solc; every other value maps to the vyper fallback family.
func CompilerPlatformFromLanguage(language string) CompilerPlatform {
	if language == solidityLanguageTag {
		return CompilerPlatformSolc
	}
	return CompilerPlatformVyper
}

// CompilerVersion describes the compiler which produced one compilation unit. It is attached to a CompilationUnit
// exactly once and never mutated afterwards.
type CompilerVersion struct {
	// Platform describes the compiler family which produced the artifacts.
	Platform CompilerPlatform `json:"platform"`

	// Version describes the semantic version string the toolchain reported for the compiler.
	Version string `json:"version"`

	// Optimized describes whether the compiler's optimizer was enabled for the build.
	Optimized bool `json:"optimized"`
}
