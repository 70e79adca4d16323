// Package registry maps caller-chosen identifiers to the objects created for
// them earlier in a command sequence.
package registry

import "github.com/MyCarrier-DevOps/go-genrepo/internal/git"

// Registry holds at most one binding per identifier. Rebinding an identifier
// replaces its previous ref; nothing is ever removed.
type Registry struct {
	bindings map[string]git.ObjectRef
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{bindings: make(map[string]git.ObjectRef)}
}

// Bind associates id with ref, overwriting any prior binding.
func (r *Registry) Bind(id string, ref git.ObjectRef) {
	r.bindings[id] = ref
}

// Resolve returns the ref bound to id. The boolean is false when id has never
// been bound; deciding whether that is tolerable is up to the caller.
func (r *Registry) Resolve(id string) (git.ObjectRef, bool) {
	ref, ok := r.bindings[id]
	return ref, ok
}

// Bindings returns a copy of all current bindings keyed by identifier.
func (r *Registry) Bindings() map[string]git.ObjectRef {
	out := make(map[string]git.ObjectRef, len(r.bindings))
	for id, ref := range r.bindings {
		out[id] = ref
	}
	return out
}
