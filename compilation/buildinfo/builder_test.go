package buildinfo

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/stretchr/testify/assert"
)

// testProjectRoot anchors all path resolution in builder tests.
var testProjectRoot = filepath.Join(string(filepath.Separator), "srv", "project")

// testDocument builds a parsed document with one source and one contract, allowing the compiler version to vary.
func testDocument(t *testing.T, versionString string) *Document {
	document, err := Parse("test-doc", []byte(fmt.Sprintf(`{
		"solcVersion": "%s",
		"input": {"language": "Solidity", "settings": {"optimizer": {"enabled": true}}},
		"output": {
			"sources": {
				"contracts/Token.sol": {"ast": {"nodeType": "SourceUnit"}}
			},
			"contracts": {
				"contracts/Token.sol": {
					"contracts/Token.sol:Token": {
						"abi": [{"type": "constructor"}],
						"evm": {
							"bytecode": {"object": "6080", "sourceMap": "1:2:0;3:4:0;"},
							"deployedBytecode": {"object": "6081", "sourceMap": "5:6:0"}
						},
						"devdoc": {"title": "A token"}
					}
				}
			}
		}
	}`, versionString)))
	assert.NoError(t, err)
	return document
}

func TestBuilderBuild_PopulatesUnit(t *testing.T) {
	builder := &Builder{ProjectRoot: testProjectRoot, WorkingDir: testProjectRoot}
	unit := types.NewCompilationUnit("test-doc")
	document := testDocument(t, "0.8.4")

	err := builder.Build(document, unit, filepath.Join(testProjectRoot, "contracts", "Token.sol"))
	assert.NoError(t, err)
	assert.True(t, unit.Sealed())
	assert.Equal(t, "0.8.4", unit.CompilerVersion().Version)
	assert.True(t, unit.CompilerVersion().Optimized)

	// The "sources" and "contracts" sections reference the same file, so there is exactly one source unit.
	filenames := unit.Filenames()
	assert.Len(t, filenames, 1)
	assert.Equal(t, "contracts/Token.sol", filenames[0].Relative)

	sourceUnit, ok := unit.SourceUnit(filenames[0])
	assert.True(t, ok)
	assert.NotNil(t, sourceUnit.Ast)

	// The qualified identifier was reduced to the bare contract name everywhere.
	assert.Equal(t, []string{"Token"}, sourceUnit.ContractNames())
	assert.Equal(t, []string{"Token"}, unit.ContractsForFilename(filenames[0]))
	assert.Equal(t, "6080", sourceUnit.InitBytecodes["Token"])
	assert.Equal(t, "6081", sourceUnit.RuntimeBytecodes["Token"])

	// Source maps are split into per-instruction records with empty records preserved.
	assert.Equal(t, types.SourceMap{"1:2:0", "3:4:0", ""}, sourceUnit.InitSourceMaps["Token"])
	assert.Equal(t, types.SourceMap{"5:6:0"}, sourceUnit.RuntimeSourceMaps["Token"])

	// Absent userdoc is materialized as an empty mapping alongside the present devdoc.
	natspec := sourceUnit.Natspecs["Token"]
	assert.NotNil(t, natspec.Userdoc)
	assert.Empty(t, natspec.Userdoc)
	assert.Equal(t, "A token", natspec.Devdoc["title"])
}

func TestBuilderBuild_EntrypointOverride(t *testing.T) {
	builder := &Builder{ProjectRoot: testProjectRoot, WorkingDir: testProjectRoot}
	target := filepath.Join(testProjectRoot, "contracts", "Token.sol")

	// A document whose "sources" section reports a path unrelated to the build target.
	document, err := Parse("quirk-doc", []byte(`{
		"solcVersion": "0.4.3",
		"input": {"language": "Solidity", "settings": {}},
		"output": {
			"sources": {"ignored.sol": {"legacyAST": {"name": "SourceUnit"}}},
			"contracts": {}
		}
	}`))
	assert.NoError(t, err)

	unit := types.NewCompilationUnit("quirk-doc")
	err = builder.Build(document, unit, target)
	assert.NoError(t, err)

	// The reported path was replaced with the resolved build entry point.
	filenames := unit.Filenames()
	assert.Len(t, filenames, 1)
	assert.Equal(t, target, filenames[0].Absolute)
	for _, filename := range filenames {
		assert.NotContains(t, filename.Absolute, "ignored.sol")
	}

	// The same document under an unaffected compiler version keeps the reported path.
	document, err = Parse("modern-doc", []byte(`{
		"solcVersion": "0.4.10",
		"input": {"language": "Solidity", "settings": {}},
		"output": {
			"sources": {"ignored.sol": {"legacyAST": {"name": "SourceUnit"}}},
			"contracts": {}
		}
	}`))
	assert.NoError(t, err)

	unit = types.NewCompilationUnit("modern-doc")
	err = builder.Build(document, unit, target)
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(testProjectRoot, "ignored.sol"), unit.Filenames()[0].Absolute)
}

func TestBuilderBuild_MissingAst(t *testing.T) {
	builder := &Builder{ProjectRoot: testProjectRoot, WorkingDir: testProjectRoot}
	document, err := Parse("no-ast", []byte(`{
		"solcVersion": "0.8.4",
		"input": {"language": "Solidity", "settings": {}},
		"output": {
			"sources": {"contracts/A.sol": {}},
			"contracts": {}
		}
	}`))
	assert.NoError(t, err)

	unit := types.NewCompilationUnit("no-ast")
	err = builder.Build(document, unit, "")
	assert.Error(t, err)
	assert.True(t, types.IsCompilationInvalid(err))

	// The failure names the offending source path and document.
	assert.Contains(t, err.Error(), "contracts/A.sol")
	assert.Contains(t, err.Error(), "no-ast")

	// Failed builds never seal the unit; the caller discards it.
	assert.False(t, unit.Sealed())
}

func TestBuilderBuild_ContractsOnlyPath(t *testing.T) {
	builder := &Builder{ProjectRoot: testProjectRoot, WorkingDir: testProjectRoot}

	// A path referenced only by the "contracts" section still materializes a source unit, just without an AST.
	document, err := Parse("contracts-only", []byte(`{
		"solcVersion": "0.8.4",
		"input": {"language": "Solidity", "settings": {}},
		"output": {
			"sources": {},
			"contracts": {
				"contracts/Lib.sol": {
					"Lib": {
						"abi": [],
						"evm": {
							"bytecode": {"object": "", "sourceMap": ""},
							"deployedBytecode": {"object": "", "sourceMap": ""}
						}
					}
				}
			}
		}
	}`))
	assert.NoError(t, err)

	unit := types.NewCompilationUnit("contracts-only")
	err = builder.Build(document, unit, "")
	assert.NoError(t, err)

	sourceUnit, ok := unit.SourceUnit(unit.Filenames()[0])
	assert.True(t, ok)
	assert.Nil(t, sourceUnit.Ast)
	assert.Equal(t, []string{"Lib"}, sourceUnit.ContractNames())

	// Empty bytecode objects and source maps are legitimate values, distinct from absent ones.
	assert.Equal(t, "", sourceUnit.InitBytecodes["Lib"])
	assert.Equal(t, types.SourceMap{""}, sourceUnit.InitSourceMaps["Lib"])
}

func TestBuilderBuild_MissingContractFields(t *testing.T) {
	builder := &Builder{ProjectRoot: testProjectRoot, WorkingDir: testProjectRoot}
	tests := []struct {
		name string
		evm  string
	}{
		{"missing init bytecode", `{"deployedBytecode": {"object": "6081", "sourceMap": ""}}`},
		{"missing init bytecode object", `{"bytecode": {"sourceMap": ""}, "deployedBytecode": {"object": "6081", "sourceMap": ""}}`},
		{"missing init source map", `{"bytecode": {"object": "6080"}, "deployedBytecode": {"object": "6081", "sourceMap": ""}}`},
		{"missing runtime bytecode", `{"bytecode": {"object": "6080", "sourceMap": ""}}`},
		{"missing runtime source map", `{"bytecode": {"object": "6080", "sourceMap": ""}, "deployedBytecode": {"object": "6081"}}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			document, err := Parse("partial", []byte(fmt.Sprintf(`{
				"solcVersion": "0.8.4",
				"input": {"language": "Solidity", "settings": {}},
				"output": {
					"sources": {},
					"contracts": {"contracts/A.sol": {"Broken": {"abi": [], "evm": %s}}}
				}
			}`, test.evm)))
			assert.NoError(t, err)

			unit := types.NewCompilationUnit("partial")
			err = builder.Build(document, unit, "")
			assert.Error(t, err)
			assert.True(t, types.IsCompilationInvalid(err))

			// The failure names the contract, its path, and the document.
			assert.Contains(t, err.Error(), "Broken")
			assert.Contains(t, err.Error(), "contracts/A.sol")
			assert.Contains(t, err.Error(), "partial")
		})
	}
}

func TestBuilderBuild_Deterministic(t *testing.T) {
	target := filepath.Join(testProjectRoot, "contracts", "Token.sol")

	// Building the same document twice yields structurally identical units.
	buildOnce := func() *types.CompilationUnit {
		builder := &Builder{ProjectRoot: testProjectRoot, WorkingDir: testProjectRoot}
		unit := types.NewCompilationUnit("test-doc")
		err := builder.Build(testDocument(t, "0.8.4"), unit, target)
		assert.NoError(t, err)
		return unit
	}

	first := buildOnce()
	second := buildOnce()
	assert.Equal(t, first.Filenames(), second.Filenames())
	for i, sourceUnit := range first.SourceUnits() {
		assert.Equal(t, sourceUnit.ContractNames(), second.SourceUnits()[i].ContractNames())
	}
}
