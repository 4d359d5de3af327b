package cache

import (
	"path/filepath"
	"testing"

	"github.com/solarium-dev/solarium/compilation"
	"github.com/solarium-dev/solarium/compilation/types"
	"github.com/stretchr/testify/assert"
)

// testExportedSession builds a small exported session for cache roundtrip tests.
func testExportedSession() *compilation.ExportedSession {
	return &compilation.ExportedSession{
		ID: "7d9f2c1e-0000-0000-0000-000000000001",
		Units: []compilation.ExportedCompilationUnit{
			{
				UniqID: "doc-1",
				Compiler: types.CompilerVersion{
					Platform:  types.CompilerPlatformSolc,
					Version:   "0.8.4",
					Optimized: true,
				},
				Sources: []compilation.ExportedSourceUnit{
					{
						Filename: types.ResolveFilename("contracts/Token.sol", "/srv/project", "/srv/project"),
						Ast:      []byte(`{"nodeType":"SourceUnit"}`),
						Contracts: []compilation.ExportedContract{
							{
								Name:             "Token",
								Abi:              []byte(`[]`),
								InitBytecode:     "6080",
								RuntimeBytecode:  "6081",
								InitSourceMap:    types.SplitSourceMap("1:2:0;"),
								RuntimeSourceMap: types.SplitSourceMap("3:4:0"),
								Natspec:          types.NewNatspec(nil, nil),
							},
						},
					},
				},
			},
		},
	}
}

func TestModelCache_Roundtrip(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache", DefaultCacheFileName)
	modelCache, err := Open(cachePath)
	assert.NoError(t, err)
	defer modelCache.Close()

	const artifactHash = "abc123"

	// A fresh cache holds nothing.
	found, err := modelCache.Has(artifactHash)
	assert.NoError(t, err)
	assert.False(t, found)
	_, found, err = modelCache.Get(artifactHash)
	assert.NoError(t, err)
	assert.False(t, found)

	// Stored sessions come back structurally identical.
	exported := testExportedSession()
	assert.NoError(t, modelCache.Put(artifactHash, exported))

	found, err = modelCache.Has(artifactHash)
	assert.NoError(t, err)
	assert.True(t, found)

	restored, found, err := modelCache.Get(artifactHash)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, exported.ID, restored.ID)
	assert.Len(t, restored.Units, 1)
	assert.Equal(t, "doc-1", restored.Units[0].UniqID)
	assert.Equal(t, "0.8.4", restored.Units[0].Compiler.Version)

	restoredContract := restored.Units[0].Sources[0].Contracts[0]
	assert.Equal(t, "Token", restoredContract.Name)
	assert.Equal(t, "6080", restoredContract.InitBytecode)
	assert.Equal(t, types.SourceMap{"1:2:0", ""}, restoredContract.InitSourceMap)
}

func TestModelCache_PersistsAcrossReopen(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), DefaultCacheFileName)
	const artifactHash = "def456"

	modelCache, err := Open(cachePath)
	assert.NoError(t, err)
	assert.NoError(t, modelCache.Put(artifactHash, testExportedSession()))
	assert.NoError(t, modelCache.Close())

	// Entries survive a close/reopen cycle.
	modelCache, err = Open(cachePath)
	assert.NoError(t, err)
	defer modelCache.Close()

	found, err := modelCache.Has(artifactHash)
	assert.NoError(t, err)
	assert.True(t, found)
}
