package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_CreateCompilationUnit(t *testing.T) {
	session := NewSession()
	assert.NotEqual(t, "", session.ID().String())

	unit, err := session.CreateCompilationUnit("doc-1")
	assert.NoError(t, err)
	assert.Equal(t, "doc-1", unit.UniqID())

	// Each document produces exactly one unit; identifiers never repeat.
	_, err = session.CreateCompilationUnit("doc-1")
	assert.Error(t, err)

	found, ok := session.CompilationUnit("doc-1")
	assert.True(t, ok)
	assert.Same(t, unit, found)

	_, ok = session.CompilationUnit("doc-2")
	assert.False(t, ok)
}

func TestSession_UnitsKeepDocumentOrder(t *testing.T) {
	session := NewSession()
	for _, uniqID := range []string{"zeta", "alpha", "mid"} {
		_, err := session.CreateCompilationUnit(uniqID)
		assert.NoError(t, err)
	}

	// Units are observed in processing order, not identifier order.
	units := session.CompilationUnits()
	assert.Len(t, units, 3)
	assert.Equal(t, "zeta", units[0].UniqID())
	assert.Equal(t, "alpha", units[1].UniqID())
	assert.Equal(t, "mid", units[2].UniqID())
}

func TestSession_RemoveCompilationUnit(t *testing.T) {
	session := NewSession()
	for _, uniqID := range []string{"doc-1", "doc-2", "doc-3"} {
		_, err := session.CreateCompilationUnit(uniqID)
		assert.NoError(t, err)
	}

	session.RemoveCompilationUnit("doc-2")
	_, ok := session.CompilationUnit("doc-2")
	assert.False(t, ok)

	units := session.CompilationUnits()
	assert.Len(t, units, 2)
	assert.Equal(t, "doc-1", units[0].UniqID())
	assert.Equal(t, "doc-3", units[1].UniqID())

	// Removing an unknown identifier is a no-op.
	session.RemoveCompilationUnit("doc-9")
	assert.Len(t, session.CompilationUnits(), 2)
}
