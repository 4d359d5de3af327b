package types

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CompilationUnit models the set of sources and contracts produced by one build-info document. It owns the compiler
// metadata for the build, the source units keyed by canonical filename, and a reverse index from canonical filename
// to the contract names defined there. A unit is mutable while its document is being processed and sealed once
// processing completes; a sealed unit rejects all further mutation.
type CompilationUnit struct {
	// uniqID describes the unique identity of this unit: the base name of the build-info document which produced
	// it, with the file extension stripped.
	uniqID string

	// compilerVersion describes the compiler which produced this unit's artifacts. It is attached exactly once.
	compilerVersion *CompilerVersion

	// sourceUnits maps canonical filenames to the source units of this compilation.
	sourceUnits map[Filename]*SourceUnit

	// filenameToContracts is the reverse index mapping canonical filenames to the set of contract names defined in
	// that file.
	filenameToContracts map[Filename]map[string]struct{}

	// sealed describes whether this unit has finished populating. Sealed units are immutable.
	sealed bool
}

// NewCompilationUnit creates an empty CompilationUnit with the provided unique identifier.
func NewCompilationUnit(uniqID string) *CompilationUnit {
	return &CompilationUnit{
		uniqID:              uniqID,
		sourceUnits:         make(map[Filename]*SourceUnit),
		filenameToContracts: make(map[Filename]map[string]struct{}),
	}
}

// UniqID returns the unique identifier of this compilation unit.
func (u *CompilationUnit) UniqID() string {
	return u.uniqID
}

// CompilerVersion returns the compiler metadata attached to this unit, or nil if none has been attached yet.
func (u *CompilationUnit) CompilerVersion() *CompilerVersion {
	return u.compilerVersion
}

// SetCompilerVersion attaches compiler metadata to this unit. Metadata is attached exactly once; attaching it again
// or mutating a sealed unit returns an error.
func (u *CompilationUnit) SetCompilerVersion(version CompilerVersion) error {
	if u.sealed {
		return fmt.Errorf("could not set compiler version: compilation unit '%s' is sealed", u.uniqID)
	}
	if u.compilerVersion != nil {
		return fmt.Errorf("could not set compiler version: compilation unit '%s' already has one attached", u.uniqID)
	}
	u.compilerVersion = &version
	return nil
}

// GetOrCreateSourceUnit returns the source unit for the provided canonical filename, creating an empty one if this is
// the first reference to that filename within the unit. Returns an error if the unit is sealed.
func (u *CompilationUnit) GetOrCreateSourceUnit(filename Filename) (*SourceUnit, error) {
	if sourceUnit, ok := u.sourceUnits[filename]; ok {
		return sourceUnit, nil
	}
	if u.sealed {
		return nil, fmt.Errorf("could not create source unit for '%s': compilation unit '%s' is sealed", filename, u.uniqID)
	}
	sourceUnit := NewSourceUnit(filename)
	u.sourceUnits[filename] = sourceUnit
	return sourceUnit, nil
}

// SourceUnit returns the source unit for the provided canonical filename, and a boolean indicating whether one
// exists.
func (u *CompilationUnit) SourceUnit(filename Filename) (*SourceUnit, bool) {
	sourceUnit, ok := u.sourceUnits[filename]
	return sourceUnit, ok
}

// Filenames returns the canonical filenames of all source units in this compilation, sorted for determinism.
func (u *CompilationUnit) Filenames() []Filename {
	filenames := maps.Keys(u.sourceUnits)
	slices.SortFunc(filenames, func(a Filename, b Filename) int {
		return strings.Compare(a.Absolute, b.Absolute)
	})
	return filenames
}

// SourceUnits returns all source units of this compilation, ordered by canonical filename for determinism.
func (u *CompilationUnit) SourceUnits() []*SourceUnit {
	filenames := u.Filenames()
	sourceUnits := make([]*SourceUnit, len(filenames))
	for i, filename := range filenames {
		sourceUnits[i] = u.sourceUnits[filename]
	}
	return sourceUnits
}

// RegisterContract records a contract name as defined in the source file with the provided canonical filename,
// updating both the owning source unit's contract name set and this unit's reverse index. Returns an error if the
// unit is sealed.
func (u *CompilationUnit) RegisterContract(filename Filename, contractName string) error {
	if u.sealed {
		return fmt.Errorf("could not register contract '%s': compilation unit '%s' is sealed", contractName, u.uniqID)
	}

	// Record the name on the source unit itself.
	sourceUnit, err := u.GetOrCreateSourceUnit(filename)
	if err != nil {
		return err
	}
	sourceUnit.AddContractName(contractName)

	// Record the name in the filename-to-contracts reverse index.
	contracts, ok := u.filenameToContracts[filename]
	if !ok {
		contracts = make(map[string]struct{})
		u.filenameToContracts[filename] = contracts
	}
	contracts[contractName] = struct{}{}
	return nil
}

// ContractsForFilename returns the names of all contracts defined in the source file with the provided canonical
// filename, sorted for determinism.
func (u *CompilationUnit) ContractsForFilename(filename Filename) []string {
	names := maps.Keys(u.filenameToContracts[filename])
	slices.Sort(names)
	return names
}

// Seal marks this compilation unit as fully populated. Sealing is irreversible; all mutating operations fail once a
// unit is sealed.
func (u *CompilationUnit) Seal() {
	u.sealed = true
}

// Sealed returns a boolean indicating whether this compilation unit has been sealed.
func (u *CompilationUnit) Sealed() bool {
	return u.sealed
}
