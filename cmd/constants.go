package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "solarium.json"

// DefaultCompilationPlatform describes the default compilation platform to use if one is not provided
const DefaultCompilationPlatform = "hardhat"

// TargetFlagDescription describes the help text for the --target flag shared by commands that accept one.
const TargetFlagDescription = "target file or directory to compile"
