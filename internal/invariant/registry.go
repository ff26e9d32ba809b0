package invariant

import "fmt"

// Registry is the ordered, read-only set of property definitions for a
// deployment. Declaration order NEVER changes after construction: the
// result sequence of every run follows it exactly, which keeps output
// diffable across runs regardless of how evaluation is scheduled.
//
// Build one Registry at startup and treat it as a loaded configuration
// table. It is safe for concurrent use because it is never mutated.
type Registry struct {
	defs []Definition
}

// NewRegistry builds a registry from definitions in declaration order.
// The slice is copied so later mutation by the caller cannot break the
// ordering invariant. Duplicate or empty names are rejected.
func NewRegistry(defs ...Definition) (*Registry, error) {
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("definition %d has empty name", i)
		}
		if d.Eval == nil {
			return nil, fmt.Errorf("definition %q has nil eval", d.Name)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("duplicate definition %q", d.Name)
		}
		seen[d.Name] = true
	}

	copied := make([]Definition, len(defs))
	copy(copied, defs)
	return &Registry{defs: copied}, nil
}

// Default returns the registry of built-in security properties, in the
// upstream property-list order.
func Default() *Registry {
	reg, err := NewRegistry(
		Definition{
			Name:        NameNoUserWriteSupervisor,
			Description: "no memory write below supervisor privilege",
			Eval:        checkNoUserWriteSupervisor,
		},
		Definition{
			Name:        NameSecureBootPC,
			Description: "first instruction fetched from the reset vector",
			Eval:        checkSecureBootPC,
		},
		Definition{
			Name:        NameNoInvalidPrivilege,
			Description: "privilege changes only via defined transition instructions",
			Eval:        checkNoInvalidPrivilege,
		},
	)
	if err != nil {
		panic(err) // built-in definitions are statically well-formed
	}
	return reg
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Definitions returns the definitions in declaration order. The slice
// is a copy; the registry itself stays immutable.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}
