// Package buildinfo parses hardhat-like build-info documents and assembles compilation units from them. The schema
// is shared by several toolchain wrappers (hardhat, foundry), so the package operates purely on decoded documents
// and never touches the toolchains themselves.
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/solarium-dev/solarium/utils"
)

// Document is the validated, typed form of one build-info document: compiler metadata plus the two raw output
// sections. Absent sections decode as empty mappings, as a build may legitimately produce no sources or no
// contracts; a missing compiler version or missing input/output descriptor is a validation failure instead.
type Document struct {
	// Name describes the base name of the document's artifact file with the extension stripped. It serves as the
	// unique identifier of the compilation unit built from this document.
	Name string

	// CompilerVersion describes the compiler family, version, and optimizer setting the document reported.
	CompilerVersion types.CompilerVersion

	// Sources describes the raw "sources" output section, keyed by the path string the toolchain reported.
	Sources map[string]SourceEntry

	// Contracts describes the raw "contracts" output section, keyed by reported path, then by raw contract
	// identifier.
	Contracts map[string]map[string]ContractEntry
}

// SourceEntry describes one entry of a document's "sources" section.
type SourceEntry struct {
	// Ast describes the abstract syntax tree document, stored verbatim.
	Ast json.RawMessage `json:"ast"`

	// LegacyAst describes the abstract syntax tree under the field name older compilers emitted.
	LegacyAst json.RawMessage `json:"legacyAST"`
}

// EffectiveAst returns the entry's AST document, falling back to the legacy field if the modern one is absent.
// Returns nil if neither field carries a value.
func (e SourceEntry) EffectiveAst() json.RawMessage {
	if jsonValuePresent(e.Ast) {
		return e.Ast
	}
	if jsonValuePresent(e.LegacyAst) {
		return e.LegacyAst
	}
	return nil
}

// ContractEntry describes one contract record of a document's "contracts" section.
type ContractEntry struct {
	// Abi describes the contract's application binary interface document, stored verbatim.
	Abi json.RawMessage `json:"abi"`

	// Evm describes the compiled EVM artifacts of the contract.
	Evm EvmArtifacts `json:"evm"`

	// Userdoc describes the optional user-facing documentation mapping.
	Userdoc map[string]any `json:"userdoc"`

	// Devdoc describes the optional developer-facing documentation mapping.
	Devdoc map[string]any `json:"devdoc"`
}

// EvmArtifacts describes the bytecode objects of one contract record.
type EvmArtifacts struct {
	// Bytecode describes the initialization bytecode artifact.
	Bytecode *BytecodeArtifact `json:"bytecode"`

	// DeployedBytecode describes the runtime bytecode artifact.
	DeployedBytecode *BytecodeArtifact `json:"deployedBytecode"`
}

// BytecodeArtifact describes a bytecode object and its source mapping. Fields are pointers so that an absent field
// can be distinguished from a legitimately empty one: a contract with no runtime code still reports empty strings.
type BytecodeArtifact struct {
	// Object describes the hex-encoded bytecode.
	Object *string `json:"object"`

	// SourceMap describes the delimited per-instruction source mapping string for the bytecode.
	SourceMap *string `json:"sourceMap"`
}

// rawDocument mirrors the top-level shape of a build-info document for decoding. Descriptors are pointers so
// validation can distinguish a missing descriptor from an empty one.
type rawDocument struct {
	SolcVersion string     `json:"solcVersion"`
	Input       *rawInput  `json:"input"`
	Output      *rawOutput `json:"output"`
}

// rawInput mirrors the compiler input descriptor of a build-info document.
type rawInput struct {
	Language string `json:"language"`
	Settings struct {
		Optimizer struct {
			Enabled bool `json:"enabled"`
		} `json:"optimizer"`
	} `json:"settings"`
}

// rawOutput mirrors the compiler output descriptor of a build-info document.
type rawOutput struct {
	Sources   map[string]SourceEntry               `json:"sources"`
	Contracts map[string]map[string]ContractEntry `json:"contracts"`
}

// Parse decodes and validates one build-info document. The provided name identifies the document in errors and
// becomes the identity of the compilation unit built from it. Returns the typed document, or a
// CompilationInvalidError if the document cannot be decoded or its top-level shape is missing the compiler version
// or the input/output descriptors.
func Parse(name string, data []byte) (*Document, error) {
	// Decode the raw document shape.
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &types.CompilationInvalidError{
			Reason:   fmt.Sprintf("could not decode build-info document: %v", err),
			Document: name,
		}
	}

	// Validate the top-level shape. A section being empty is fine; a descriptor being absent is not.
	if raw.SolcVersion == "" {
		return nil, &types.CompilationInvalidError{
			Reason:   "build-info document is missing its compiler version field",
			Document: name,
		}
	}
	if raw.Input == nil {
		return nil, &types.CompilationInvalidError{
			Reason:   "build-info document is missing its compiler input descriptor",
			Document: name,
		}
	}
	if raw.Output == nil {
		return nil, &types.CompilationInvalidError{
			Reason:   "build-info document is missing its compiler output descriptor",
			Document: name,
		}
	}

	// Treat absent sections as empty mappings.
	sources := raw.Output.Sources
	if sources == nil {
		sources = make(map[string]SourceEntry)
	}
	contracts := raw.Output.Contracts
	if contracts == nil {
		contracts = make(map[string]map[string]ContractEntry)
	}

	return &Document{
		Name: name,
		CompilerVersion: types.CompilerVersion{
			Platform:  types.CompilerPlatformFromLanguage(raw.Input.Language),
			Version:   raw.SolcVersion,
			Optimized: raw.Input.Settings.Optimizer.Enabled,
		},
		Sources:   sources,
		Contracts: contracts,
	}, nil
}

// ParseFile reads and parses the build-info document at the provided path. The document's name is derived from the
// file's base name with the extension stripped.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return Parse(utils.GetFileNameWithoutExtension(path), data)
}

// jsonValuePresent returns a boolean indicating whether a raw JSON field carries an actual value, treating both an
// absent field and an explicit null as not present.
func jsonValuePresent(value json.RawMessage) bool {
	return len(value) > 0 && string(value) != "null"
}
