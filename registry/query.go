// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package registry

import (
	"maps"
	"slices"

	"github.com/tochemey/compkit/component"
)

// Clone returns a structurally independent copy of the registry.
// Registrations are shared, every index is copied.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clone := &Registry{
		all:           maps.Clone(r.all),
		resolved:      slices.Clone(r.resolved),
		resolvedIndex: maps.Clone(r.resolvedIndex),
		aliases:       maps.Clone(r.aliases),
		requirements:  cloneSets(r.requirements),
		pendings:      cloneSets(r.pendings),
		origins:       maps.Clone(r.origins),
		sequence:      maps.Clone(r.sequence),
		next:          r.next,
		logger:        r.logger,
	}
	return clone
}

func cloneSets(sets map[component.Name]nameSet) map[component.Name]nameSet {
	out := make(map[component.Name]nameSet, len(sets))
	for name, set := range sets {
		out[name] = set.Clone()
	}
	return out
}

// Contains reports whether a component is registered under the given name or alias.
func (r *Registry) Contains(name component.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.contains(name)
}

// IsResolved reports whether the named component is resolved.
func (r *Registry) IsResolved(name component.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isResolved(name)
}

// Canonical returns the canonical name of the given name or alias.
func (r *Registry) Canonical(name component.Name) (component.Name, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	canonical := r.unalias(name)
	_, ok := r.all[canonical]
	return canonical, ok
}

// Component returns the registration for the given name or alias.
func (r *Registry) Component(name component.Name) (*component.Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.all[r.unalias(name)]
	return reg, ok
}

// Size returns the number of registered components
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}

// Components returns every registration in registration order.
func (r *Registry) Components() []*component.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*component.Registration, 0, len(r.all))
	for _, reg := range r.all {
		out = append(out, reg)
	}
	slices.SortFunc(out, func(a, b *component.Registration) int {
		return compareSequence(r.sequence[a.Name()], r.sequence[b.Name()])
	})
	return out
}

// Resolved returns the resolved registrations in resolution order.
func (r *Registry) Resolved() []*component.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*component.Registration, 0, len(r.resolved))
	for _, name := range r.resolved {
		out = append(out, r.all[name])
	}
	return out
}

// ResolvedNames returns the resolved names in resolution order.
func (r *Registry) ResolvedNames() []component.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.resolved)
}

// MissingDependencies returns the required names the component still waits for, sorted.
func (r *Registry) MissingDependencies(name component.Name) []component.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pending, ok := r.pendings[r.unalias(name)]
	if !ok {
		return nil
	}
	out := pending.ToSlice()
	slices.Sort(out)
	return out
}

// PendingComponents returns every pending component with the sorted names it waits for.
func (r *Registry) PendingComponents() map[component.Name][]component.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[component.Name][]component.Name, len(r.pendings))
	for name, pending := range r.pendings {
		missing := pending.ToSlice()
		slices.Sort(missing)
		out[name] = missing
	}
	return out
}

// ComponentFromOrigin returns the canonical name registered from the given origin.
func (r *Registry) ComponentFromOrigin(origin string) (component.Name, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.origins[origin]
	return name, ok
}

// HasOrigin reports whether a component was registered from the given origin.
func (r *Registry) HasOrigin(origin string) bool {
	_, ok := r.ComponentFromOrigin(origin)
	return ok
}
