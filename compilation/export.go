package compilation

import (
	"encoding/json"

	"github.com/solarium-dev/solarium/compilation/types"
)

// ExportedSession is a flat, serialization-friendly rendering of an assembled session, suitable for JSON export to
// downstream tools and for persistence in the model cache. All mappings of the live model become sorted lists here,
// so exports of structurally identical sessions are byte-identical.
type ExportedSession struct {
	// ID describes the run identifier of the exported session.
	ID string `json:"id"`

	// Units describes the exported compilation units, in document processing order.
	Units []ExportedCompilationUnit `json:"units"`
}

// ExportedCompilationUnit is the serialization-friendly rendering of one compilation unit.
type ExportedCompilationUnit struct {
	// UniqID describes the unique identifier of the unit.
	UniqID string `json:"uniqId"`

	// Compiler describes the compiler metadata of the unit.
	Compiler types.CompilerVersion `json:"compiler"`

	// Sources describes the exported source units, ordered by canonical filename.
	Sources []ExportedSourceUnit `json:"sources"`
}

// ExportedSourceUnit is the serialization-friendly rendering of one source unit.
type ExportedSourceUnit struct {
	// Filename describes the canonical identity of the source file.
	Filename types.Filename `json:"filename"`

	// Ast describes the file's abstract syntax tree document, verbatim; it is absent for files referenced only by
	// a document's contracts section.
	Ast json.RawMessage `json:"ast,omitempty"`

	// Contracts describes the exported contract records of the file, ordered by name.
	Contracts []ExportedContract `json:"contracts"`
}

// ExportedContract is the serialization-friendly rendering of one contract record.
type ExportedContract struct {
	// Name describes the bare contract name.
	Name string `json:"name"`

	// Abi describes the contract's application binary interface document, verbatim.
	Abi json.RawMessage `json:"abi"`

	// InitBytecode describes the hex-encoded initialization bytecode.
	InitBytecode string `json:"initBytecode"`

	// RuntimeBytecode describes the hex-encoded runtime bytecode.
	RuntimeBytecode string `json:"runtimeBytecode"`

	// InitSourceMap describes the split per-instruction source mapping of the initialization bytecode.
	InitSourceMap types.SourceMap `json:"initSourceMap"`

	// RuntimeSourceMap describes the split per-instruction source mapping of the runtime bytecode.
	RuntimeSourceMap types.SourceMap `json:"runtimeSourceMap"`

	// Natspec describes the contract's structured documentation.
	Natspec types.Natspec `json:"natspec"`
}

// ExportSession renders an assembled session into its flat exported form.
func ExportSession(session *types.Session) *ExportedSession {
	exported := &ExportedSession{
		ID:    session.ID().String(),
		Units: make([]ExportedCompilationUnit, 0, len(session.CompilationUnits())),
	}
	for _, unit := range session.CompilationUnits() {
		exported.Units = append(exported.Units, exportCompilationUnit(unit))
	}
	return exported
}

// exportCompilationUnit renders one compilation unit into its flat exported form.
func exportCompilationUnit(unit *types.CompilationUnit) ExportedCompilationUnit {
	exported := ExportedCompilationUnit{
		UniqID: unit.UniqID(),
	}
	if compilerVersion := unit.CompilerVersion(); compilerVersion != nil {
		exported.Compiler = *compilerVersion
	}

	// Source units are already returned in canonical filename order.
	for _, sourceUnit := range unit.SourceUnits() {
		exportedSource := ExportedSourceUnit{
			Filename:  sourceUnit.Filename,
			Ast:       sourceUnit.Ast,
			Contracts: make([]ExportedContract, 0, len(sourceUnit.ContractNames())),
		}
		for _, name := range sourceUnit.ContractNames() {
			exportedSource.Contracts = append(exportedSource.Contracts, ExportedContract{
				Name:             name,
				Abi:              sourceUnit.Abis[name],
				InitBytecode:     sourceUnit.InitBytecodes[name],
				RuntimeBytecode:  sourceUnit.RuntimeBytecodes[name],
				InitSourceMap:    sourceUnit.InitSourceMaps[name],
				RuntimeSourceMap: sourceUnit.RuntimeSourceMaps[name],
				Natspec:          sourceUnit.Natspecs[name],
			})
		}
		exported.Sources = append(exported.Sources, exportedSource)
	}
	return exported
}
