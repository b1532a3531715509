package registry

import (
	"strings"

	"github.com/alexanderramin/pathfinder/internal/domain"
)

// Registry is the immutable, in-memory set of canonical pathways for one
// cache window. It is safe for concurrent reads.
type Registry struct {
	pathways []domain.PathwayDefinition
	byID     map[string]int
}

// All returns the pathways in load order. Callers must not modify the
// returned slice.
func (r *Registry) All() []domain.PathwayDefinition {
	if r == nil {
		return nil
	}
	return r.pathways
}

// Len returns the number of loaded pathways.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.pathways)
}

// ByID returns the pathway with the exact canonical id.
func (r *Registry) ByID(id string) (*domain.PathwayDefinition, bool) {
	if r == nil || id == "" {
		return nil, false
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return &r.pathways[i], true
}

// ByNameFold returns the first pathway whose name equals name, ignoring case.
func (r *Registry) ByNameFold(name string) (*domain.PathwayDefinition, bool) {
	if r == nil || name == "" {
		return nil, false
	}
	for i := range r.pathways {
		if strings.EqualFold(r.pathways[i].Name, name) {
			return &r.pathways[i], true
		}
	}
	return nil, false
}
