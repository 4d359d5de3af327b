package types

import (
	"fmt"

	"github.com/google/uuid"
)

// Session is the aggregate holding every CompilationUnit assembled during one artifact-discovery run. Units are kept
// in the order their build-info documents were processed, so downstream consumers observe documents in the same
// order the discovery layer reported them.
type Session struct {
	// id describes a unique identifier for this run, usable by consumers to correlate derived data with the model
	// which produced it.
	id uuid.UUID

	// compilationUnits maps unit identifiers to the compilation units of this session.
	compilationUnits map[string]*CompilationUnit

	// order describes unit identifiers in the order their documents were processed.
	order []string
}

// NewSession creates an empty Session with a freshly generated run identifier.
func NewSession() *Session {
	return &Session{
		id:               uuid.New(),
		compilationUnits: make(map[string]*CompilationUnit),
	}
}

// ID returns the unique run identifier of this session.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// CreateCompilationUnit creates an empty CompilationUnit with the provided unique identifier and registers it in this
// session. Each build-info document produces exactly one unit, so registering an identifier twice is an error.
func (s *Session) CreateCompilationUnit(uniqID string) (*CompilationUnit, error) {
	if _, exists := s.compilationUnits[uniqID]; exists {
		return nil, fmt.Errorf("could not create compilation unit: identifier '%s' already exists in this session", uniqID)
	}
	unit := NewCompilationUnit(uniqID)
	s.compilationUnits[uniqID] = unit
	s.order = append(s.order, uniqID)
	return unit, nil
}

// CompilationUnit returns the compilation unit with the provided identifier, and a boolean indicating whether one
// exists.
func (s *Session) CompilationUnit(uniqID string) (*CompilationUnit, bool) {
	unit, ok := s.compilationUnits[uniqID]
	return unit, ok
}

// CompilationUnits returns all compilation units of this session, in document processing order.
func (s *Session) CompilationUnits() []*CompilationUnit {
	units := make([]*CompilationUnit, 0, len(s.order))
	for _, uniqID := range s.order {
		if unit, ok := s.compilationUnits[uniqID]; ok {
			units = append(units, unit)
		}
	}
	return units
}

// RemoveCompilationUnit discards the compilation unit with the provided identifier from this session. It is used by
// callers to drop a partially built unit after a document fails to parse; a failed unit is never patched in place.
func (s *Session) RemoveCompilationUnit(uniqID string) {
	delete(s.compilationUnits, uniqID)
	for i, id := range s.order {
		if id == uniqID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
