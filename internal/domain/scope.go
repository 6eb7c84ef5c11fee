package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ApplicationScope identifies the tenant partition a search runs against.
type ApplicationScope struct {
	applicationID uuid.UUID
}

// NewApplicationScope creates an application scope.
func NewApplicationScope(applicationID uuid.UUID) (ApplicationScope, error) {
	if applicationID == uuid.Nil {
		return ApplicationScope{}, fmt.Errorf("%w: application id is required", ErrInvalidArgument)
	}
	return ApplicationScope{applicationID: applicationID}, nil
}

// ApplicationID returns the tenant application id.
func (s ApplicationScope) ApplicationID() uuid.UUID { return s.applicationID }

// SearchEdge identifies the graph edge a search traverses: the source node
// plus the edge name connecting it to the indexed entities.
type SearchEdge struct {
	nodeID   uuid.UUID
	edgeName string
}

// NewSearchEdge creates a search edge.
func NewSearchEdge(nodeID uuid.UUID, edgeName string) (SearchEdge, error) {
	if nodeID == uuid.Nil {
		return SearchEdge{}, fmt.Errorf("%w: edge node id is required", ErrInvalidArgument)
	}
	if edgeName == "" {
		return SearchEdge{}, fmt.Errorf("%w: edge name is required", ErrInvalidArgument)
	}
	return SearchEdge{nodeID: nodeID, edgeName: edgeName}, nil
}

// NodeID returns the source node id.
func (e SearchEdge) NodeID() uuid.UUID { return e.nodeID }

// EdgeName returns the edge name.
func (e SearchEdge) EdgeName() string { return e.edgeName }

// SearchTypes is the set of entity type names a search is restricted to.
// An empty set means all types.
type SearchTypes struct {
	typeNames []string
}

// NewSearchTypes creates a type restriction from the given type names.
func NewSearchTypes(typeNames ...string) SearchTypes {
	names := make([]string, 0, len(typeNames))
	for _, n := range typeNames {
		if n != "" {
			names = append(names, n)
		}
	}
	return SearchTypes{typeNames: names}
}

// AllTypes returns the unrestricted type set.
func AllTypes() SearchTypes { return SearchTypes{} }

// TypeNames returns the restricted type names, empty for all types.
func (t SearchTypes) TypeNames() []string { return t.typeNames }

// IsAllTypes reports whether the set places no type restriction.
func (t SearchTypes) IsAllTypes() bool { return len(t.typeNames) == 0 }
