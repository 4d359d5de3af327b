package buildinfo

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/solarium-dev/solarium/compilation/types"
)

// Builder populates compilation units from parsed build-info documents. It carries the directory context needed to
// canonicalize the path strings documents report, along with an optional filename resolver cache scoped to one
// discovery session.
type Builder struct {
	// ProjectRoot describes the root directory of the project the artifacts were built for. Canonical filename
	// relativity is computed against it.
	ProjectRoot string

	// WorkingDir describes the directory the toolchain resolved relative source paths from, as declared by the
	// toolchain's own configuration.
	WorkingDir string

	// ResolverCache optionally memoizes filename resolution across the documents of one session. It must not be
	// shared with concurrently writing builders.
	ResolverCache *types.ResolverCache
}

// Build populates the provided compilation unit from one parsed build-info document and seals it. The target
// argument is the resolved build entry-point path, substituted for every reported source path when the document's
// compiler version is subject to the entry-point override quirk. On error the unit is left unsealed and partially
// populated; callers discard it rather than retry.
func (b *Builder) Build(document *Document, unit *types.CompilationUnit, target string) error {
	// Attach the document's compiler metadata. This happens exactly once per unit.
	if err := unit.SetCompilerVersion(document.CompilerVersion); err != nil {
		return err
	}

	// Determine up front whether reported source paths can be trusted for this compiler version.
	overrideSourcePaths := RequiresEntrypointOverride(document.CompilerVersion.Platform, document.CompilerVersion.Version)

	// Populate source units from the "sources" section. Entries are visited in sorted key order so that repeated
	// builds of the same document behave identically.
	for _, reportedPath := range sortedKeys(document.Sources) {
		entry := document.Sources[reportedPath]

		// Compute the effective path: the entry's own path field, unless the version quirk forces the resolved
		// build entry point onto every entry.
		effectivePath := reportedPath
		if overrideSourcePaths {
			effectivePath = target
		}
		filename := types.ResolveFilenameCached(b.ResolverCache, effectivePath, b.ProjectRoot, b.WorkingDir)

		sourceUnit, err := unit.GetOrCreateSourceUnit(filename)
		if err != nil {
			return err
		}

		// Every source entry must carry an AST under either the modern or the legacy field name.
		ast := entry.EffectiveAst()
		if ast == nil {
			return &types.CompilationInvalidError{
				Reason:   "AST not found for source entry",
				Path:     effectivePath,
				Document: document.Name,
			}
		}
		sourceUnit.Ast = ast
	}

	// Populate contract records from the "contracts" section. The entry-point override applies only to the
	// "sources" section, so reported paths are resolved as-is here.
	for _, reportedPath := range sortedKeys(document.Contracts) {
		contractsInfo := document.Contracts[reportedPath]
		filename := types.ResolveFilenameCached(b.ResolverCache, reportedPath, b.ProjectRoot, b.WorkingDir)

		// A path referenced only by the "contracts" section still gets a source unit; it simply carries no AST.
		sourceUnit, err := unit.GetOrCreateSourceUnit(filename)
		if err != nil {
			return err
		}

		for _, rawName := range sortedKeys(contractsInfo) {
			entry := contractsInfo[rawName]

			// Validate the required sub-fields before admitting anything into the model. Partial contract
			// records are never accepted.
			if err := validateContractEntry(entry, rawName, reportedPath, document.Name); err != nil {
				return err
			}

			// Register the bare name in the source unit's contract set and the unit's reverse index.
			contractName := types.ExtractContractName(rawName)
			if err := unit.RegisterContract(filename, contractName); err != nil {
				return err
			}

			// Store the contract's interface, bytecodes, split source maps, and documentation.
			sourceUnit.Abis[contractName] = entry.Abi
			sourceUnit.InitBytecodes[contractName] = *entry.Evm.Bytecode.Object
			sourceUnit.RuntimeBytecodes[contractName] = *entry.Evm.DeployedBytecode.Object
			sourceUnit.InitSourceMaps[contractName] = types.SplitSourceMap(*entry.Evm.Bytecode.SourceMap)
			sourceUnit.RuntimeSourceMaps[contractName] = types.SplitSourceMap(*entry.Evm.DeployedBytecode.SourceMap)
			sourceUnit.Natspecs[contractName] = types.NewNatspec(entry.Userdoc, entry.Devdoc)
		}
	}

	// The unit is fully populated; no further mutation is allowed.
	unit.Seal()
	return nil
}

// validateContractEntry verifies that a contract record carries every required sub-field, returning a
// CompilationInvalidError naming the contract, path, and document if any is missing.
func validateContractEntry(entry ContractEntry, rawName string, reportedPath string, documentName string) error {
	missingField := ""
	switch {
	case !jsonValuePresent(entry.Abi):
		missingField = "ABI"
	case entry.Evm.Bytecode == nil || entry.Evm.Bytecode.Object == nil:
		missingField = "init bytecode object"
	case entry.Evm.Bytecode.SourceMap == nil:
		missingField = "init source map"
	case entry.Evm.DeployedBytecode == nil || entry.Evm.DeployedBytecode.Object == nil:
		missingField = "runtime bytecode object"
	case entry.Evm.DeployedBytecode.SourceMap == nil:
		missingField = "runtime source map"
	}
	if missingField != "" {
		return &types.CompilationInvalidError{
			Reason:   "contract record is missing its " + missingField,
			Contract: rawName,
			Path:     reportedPath,
			Document: documentName,
		}
	}
	return nil
}

// sortedKeys returns the keys of the provided map in sorted order, giving map traversal a stable order.
func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
