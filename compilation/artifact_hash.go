package compilation

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/solarium-dev/solarium/compilation/types"
)

// ComputeArtifactHash computes a SHA-256 hash over all contract bytecodes of an assembled session. The hash is
// deterministic: contracts are ordered by compilation unit identifier and qualified contract name before hashing,
// so two structurally identical sessions always hash equally. It serves as the cache key for persisted models, so
// unchanged build artifacts can skip re-assembly work downstream.
func ComputeArtifactHash(session *types.Session) string {
	hasher := sha256.New()

	// Collect every contract's bytecode along with a stable identity for ordering.
	type contractBytecode struct {
		identity        string
		initBytecode    string
		runtimeBytecode string
	}
	var contracts []contractBytecode

	for _, unit := range session.CompilationUnits() {
		for _, sourceUnit := range unit.SourceUnits() {
			for _, name := range sourceUnit.ContractNames() {
				contracts = append(contracts, contractBytecode{
					identity:        unit.UniqID() + ":" + sourceUnit.Filename.Absolute + ":" + name,
					initBytecode:    sourceUnit.InitBytecodes[name],
					runtimeBytecode: sourceUnit.RuntimeBytecodes[name],
				})
			}
		}
	}

	// Sort by identity for deterministic hashing.
	sort.Slice(contracts, func(i, j int) bool {
		return contracts[i].identity < contracts[j].identity
	})

	// Hash each contract's identity and bytecodes.
	for _, c := range contracts {
		hasher.Write([]byte(c.identity))
		hasher.Write([]byte(c.initBytecode))
		hasher.Write([]byte(c.runtimeBytecode))
	}

	return hex.EncodeToString(hasher.Sum(nil))
}
