package platforms

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/stretchr/testify/assert"
)

// writeBuildInfoDocument writes a well-formed build-info document into the provided build directory, defining one
// contract in one source file.
func writeBuildInfoDocument(t *testing.T, buildDirectory string, documentName string, sourcePath string, contractName string) {
	data := fmt.Sprintf(`{
		"solcVersion": "0.8.4",
		"input": {"language": "Solidity", "settings": {"optimizer": {"enabled": false}}},
		"output": {
			"sources": {"%[1]s": {"ast": {"nodeType": "SourceUnit"}}},
			"contracts": {
				"%[1]s": {
					"%[1]s:%[2]s": {
						"abi": [],
						"evm": {
							"bytecode": {"object": "6080", "sourceMap": "1:2:0;"},
							"deployedBytecode": {"object": "6081", "sourceMap": "3:4:0"}
						}
					}
				}
			}
		}
	}`, sourcePath, contractName)
	err := os.WriteFile(filepath.Join(buildDirectory, documentName+".json"), []byte(data), 0644)
	assert.NoError(t, err)
}

func TestParseBuildInfoDirectory(t *testing.T) {
	projectRoot := t.TempDir()
	buildDirectory := filepath.Join(projectRoot, "artifacts", "build-info")
	assert.NoError(t, os.MkdirAll(buildDirectory, 0755))

	writeBuildInfoDocument(t, buildDirectory, "doc-1", "contracts/Token.sol", "Token")
	writeBuildInfoDocument(t, buildDirectory, "doc-2", "contracts/Vault.sol", "Vault")

	session := types.NewSession()
	err := ParseBuildInfoDirectory(session, projectRoot, buildDirectory, projectRoot)
	assert.NoError(t, err)

	// One compilation unit per document, each sealed and carrying its contract.
	units := session.CompilationUnits()
	assert.Len(t, units, 2)
	for _, unit := range units {
		assert.True(t, unit.Sealed())
		assert.Equal(t, "0.8.4", unit.CompilerVersion().Version)
		assert.Len(t, unit.Filenames(), 1)
	}

	unit, ok := session.CompilationUnit("doc-1")
	assert.True(t, ok)
	assert.Equal(t, []string{"Token"}, unit.ContractsForFilename(unit.Filenames()[0]))
}

func TestParseBuildInfoDirectory_NotADirectory(t *testing.T) {
	projectRoot := t.TempDir()

	// A missing build directory is a compilation-invalid condition, phrased so users know to run the build.
	session := types.NewSession()
	err := ParseBuildInfoDirectory(session, projectRoot, filepath.Join(projectRoot, "missing"), projectRoot)
	assert.Error(t, err)
	assert.True(t, types.IsCompilationInvalid(err))

	// A file at the path is just as unusable as a missing directory.
	filePath := filepath.Join(projectRoot, "not-a-dir")
	assert.NoError(t, os.WriteFile(filePath, []byte("{}"), 0644))
	err = ParseBuildInfoDirectory(session, projectRoot, filePath, projectRoot)
	assert.Error(t, err)
	assert.True(t, types.IsCompilationInvalid(err))
}

func TestParseBuildInfoDirectory_NoDocuments(t *testing.T) {
	projectRoot := t.TempDir()
	buildDirectory := filepath.Join(projectRoot, "build-info")
	assert.NoError(t, os.MkdirAll(buildDirectory, 0755))

	// Non-JSON files are not candidates.
	assert.NoError(t, os.WriteFile(filepath.Join(buildDirectory, "README.md"), []byte("notes"), 0644))

	session := types.NewSession()
	err := ParseBuildInfoDirectory(session, projectRoot, buildDirectory, projectRoot)
	assert.Error(t, err)
	assert.True(t, types.IsCompilationInvalid(err))
}

func TestParseBuildInfoDirectory_FailedDocumentDiscarded(t *testing.T) {
	projectRoot := t.TempDir()
	buildDirectory := filepath.Join(projectRoot, "build-info")
	assert.NoError(t, os.MkdirAll(buildDirectory, 0755))

	// A structurally valid document whose source entry carries no AST fails during unit assembly.
	data := `{
		"solcVersion": "0.8.4",
		"input": {"language": "Solidity", "settings": {}},
		"output": {"sources": {"contracts/A.sol": {}}, "contracts": {}}
	}`
	assert.NoError(t, os.WriteFile(filepath.Join(buildDirectory, "bad-doc.json"), []byte(data), 0644))

	session := types.NewSession()
	err := ParseBuildInfoDirectory(session, projectRoot, buildDirectory, projectRoot)
	assert.Error(t, err)
	assert.True(t, types.IsCompilationInvalid(err))

	// The partially built unit never stays in the model.
	assert.Empty(t, session.CompilationUnits())
	_, ok := session.CompilationUnit("bad-doc")
	assert.False(t, ok)
}
