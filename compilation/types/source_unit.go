package types

import (
	"encoding/json"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SourceUnit is the canonical record for one source file within a CompilationUnit. It is created lazily the first
// time either the "sources" or the "contracts" section of a build-info document references its canonical filename,
// and at most once per (CompilationUnit, Filename) pair; later references reuse the existing instance.
type SourceUnit struct {
	// Filename describes the canonical identity of the source file this unit models.
	Filename Filename

	// Ast describes the abstract syntax tree the compiler reported for this source file. Its shape is
	// toolchain-specific and it is stored verbatim. It is nil only for source units referenced solely by the
	// "contracts" section of a document; units populated from the "sources" section always carry one.
	Ast json.RawMessage

	// Abis maps contract names defined in this file to their application binary interface documents, stored
	// verbatim as reported by the compiler.
	Abis map[string]json.RawMessage

	// InitBytecodes maps contract names to the hex-encoded bytecode used to deploy the contract.
	InitBytecodes map[string]string

	// RuntimeBytecodes maps contract names to the hex-encoded bytecode expected once the contract is deployed.
	RuntimeBytecodes map[string]string

	// InitSourceMaps maps contract names to the per-instruction source mapping of their initialization bytecode.
	InitSourceMaps map[string]SourceMap

	// RuntimeSourceMaps maps contract names to the per-instruction source mapping of their runtime bytecode.
	RuntimeSourceMaps map[string]SourceMap

	// Natspecs maps contract names to their structured user/developer documentation.
	Natspecs map[string]Natspec

	// contractNames describes the set of contract names declared in this source file. Names are unique within one
	// source unit but may recur in other files of other compilation units.
	contractNames map[string]struct{}
}

// NewSourceUnit creates an empty SourceUnit for the provided canonical filename.
func NewSourceUnit(filename Filename) *SourceUnit {
	return &SourceUnit{
		Filename:          filename,
		Abis:              make(map[string]json.RawMessage),
		InitBytecodes:     make(map[string]string),
		RuntimeBytecodes:  make(map[string]string),
		InitSourceMaps:    make(map[string]SourceMap),
		RuntimeSourceMaps: make(map[string]SourceMap),
		Natspecs:          make(map[string]Natspec),
		contractNames:     make(map[string]struct{}),
	}
}

// AddContractName records a contract name as declared in this source file. Adding a name which is already present is
// a no-op, preserving uniqueness of names within the unit.
func (s *SourceUnit) AddContractName(name string) {
	s.contractNames[name] = struct{}{}
}

// HasContractName returns a boolean indicating whether this source file declares a contract with the given name.
func (s *SourceUnit) HasContractName(name string) bool {
	_, ok := s.contractNames[name]
	return ok
}

// ContractNames returns the names of all contracts declared in this source file, sorted for determinism.
func (s *SourceUnit) ContractNames() []string {
	names := maps.Keys(s.contractNames)
	slices.Sort(names)
	return names
}
