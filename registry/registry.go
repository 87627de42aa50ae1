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
	"context"
	"fmt"
	"slices"
	"sync"

	goset "github.com/deckarep/golang-set/v2"
	"go.uber.org/multierr"

	"github.com/tochemey/compkit/component"
	gerrors "github.com/tochemey/compkit/errors"
	"github.com/tochemey/compkit/internal/collection"
	"github.com/tochemey/compkit/log"
)

type nameSet = goset.Set[component.Name]

func newNameSet(names ...component.Name) nameSet {
	return goset.NewThreadUnsafeSet(names...)
}

// Registry is the dependency graph of the registered components.
//
// Every lookup goes through the alias index first. Registrations are
// notified of their transitions after the registry lock is released, in the
// order the transitions happened, so that callbacks can read the registry.
type Registry struct {
	mu sync.RWMutex

	all      map[component.Name]*component.Registration
	resolved []component.Name
	// canonical name -> position in resolved
	resolvedIndex map[component.Name]int
	aliases       map[component.Name]component.Name
	// required name, as declared -> canonical names of the components requiring it
	requirements map[component.Name]nameSet
	// canonical name -> required names, as declared, not yet resolved
	pendings map[component.Name]nameSet
	origins  map[string]component.Name
	// canonical name -> registration sequence, used to visit dependents in discovery order
	sequence map[component.Name]uint64
	next     uint64

	logger log.Logger
}

// New creates an empty Registry
func New(opts ...Option) *Registry {
	r := &Registry{
		all:           make(map[component.Name]*component.Registration),
		resolvedIndex: make(map[component.Name]int),
		aliases:       make(map[component.Name]component.Name),
		requirements:  make(map[component.Name]nameSet),
		pendings:      make(map[component.Name]nameSet),
		origins:       make(map[string]component.Name),
		sequence:      make(map[component.Name]uint64),
		logger:        log.DefaultLogger,
	}

	for _, opt := range opts {
		opt.Apply(r)
	}

	return r
}

// AddComponent adds the registration to the graph and returns true when it
// is resolved right away. A registration whose name or one of whose aliases is
// already taken, as a name or as an alias, is ignored.
// Components resolved by the cascade are notified before AddComponent returns.
func (r *Registry) AddComponent(_ context.Context, reg *component.Registration) bool {
	name := reg.Name()

	r.mu.Lock()
	if r.contains(name) {
		r.mu.Unlock()
		r.logger.Warnf("component=(%s) is already registered", name)
		return false
	}

	for _, alias := range reg.Aliases() {
		if r.contains(alias) {
			owner := r.unalias(alias)
			r.mu.Unlock()
			r.logger.Warnf("component=(%s) alias=(%s) is already taken by component=(%s)", name, alias, owner)
			return false
		}
	}

	r.all[name] = reg
	r.next++
	r.sequence[name] = r.next
	for _, alias := range reg.Aliases() {
		r.aliases[alias] = name
	}

	if origin := reg.Origin(); origin != "" {
		r.origins[origin] = name
	}

	pending := newNameSet()
	for _, required := range reg.Requires() {
		r.requirementsOf(required).Add(name)
		if !r.isResolved(required) {
			pending.Add(required)
		}
	}

	var resolved []component.Name
	if pending.Cardinality() == 0 {
		resolved = r.resolveCascade(name)
	} else {
		r.pendings[name] = pending
	}
	r.mu.Unlock()

	reg.Register()
	for _, resolvedName := range resolved {
		r.registration(resolvedName).Resolve()
	}

	return len(resolved) > 0
}

// RemoveComponent removes the component with the given name or alias and
// returns its registration, or nil when no such component exists.
// Every component depending on it, directly or not, is unresolved first,
// dependents before their requirements. Callback errors are combined in the returned error.
func (r *Registry) RemoveComponent(ctx context.Context, name component.Name) (*component.Registration, error) {
	r.mu.Lock()
	canonical := r.unalias(name)
	reg, ok := r.all[canonical]
	if !ok {
		r.mu.Unlock()
		return nil, nil
	}

	// positions before the cascade rebuilds the index
	order := r.resolvedIndex
	wasResolved := r.isResolvedCanonical(canonical)

	delete(r.all, canonical)
	delete(r.pendings, canonical)
	for _, alias := range reg.Aliases() {
		if r.aliases[alias] == canonical {
			delete(r.aliases, alias)
		}
	}

	if origin := reg.Origin(); origin != "" && r.origins[origin] == canonical {
		delete(r.origins, origin)
	}

	for _, required := range reg.Requires() {
		if dependents, ok := r.requirements[required]; ok {
			dependents.Remove(canonical)
			if dependents.Cardinality() == 0 {
				delete(r.requirements, required)
			}
		}
	}

	var unresolved []component.Name
	if wasResolved {
		unresolved = r.unresolveCascade(reg)
	}

	// components requiring an unresolved name now wait for it again
	affected := newNameSet(r.dependentsOf(reg.Names()...)...)
	for _, dependent := range unresolved {
		affected.Append(r.dependentsOf(r.namesOf(dependent)...)...)
	}
	affected.Each(func(dependent component.Name) bool {
		r.computePendings(dependent)
		return false
	})
	delete(r.sequence, canonical)

	// dependents first, in reverse resolution order
	slices.SortFunc(unresolved, func(a, b component.Name) int {
		return order[b] - order[a]
	})

	registrations := make([]*component.Registration, 0, len(unresolved))
	for _, dependent := range unresolved {
		if dependent != canonical {
			registrations = append(registrations, r.all[dependent])
		}
	}
	r.mu.Unlock()

	var err error
	for _, dependent := range registrations {
		if unresolveErr := dependent.Unresolve(ctx); unresolveErr != nil {
			err = multierr.Append(err, unresolveErr)
		}
	}

	if wasResolved {
		if unresolveErr := reg.Unresolve(ctx); unresolveErr != nil {
			err = multierr.Append(err, unresolveErr)
		}
	}
	reg.Unregister()
	return reg, err
}

// resolveCascade resolves the given component and every pending component
// unblocked by it. It returns the resolved names in resolution order.
// The caller holds the write lock.
func (r *Registry) resolveCascade(name component.Name) []component.Name {
	var resolved []component.Name
	worklist := collection.NewStack(name)
	for !worklist.IsEmpty() {
		current, _ := worklist.Pop()
		if r.isResolvedCanonical(current) {
			panic(gerrors.NewInvariantError(fmt.Errorf("component=(%s) %w", current, gerrors.ErrAlreadyResolved)))
		}

		r.resolvedIndex[current] = len(r.resolved)
		r.resolved = append(r.resolved, current)
		delete(r.pendings, current)
		resolved = append(resolved, current)

		names := r.namesOf(current)
		var ready []component.Name
		for _, dependent := range r.dependentsOf(names...) {
			pending, ok := r.pendings[dependent]
			if !ok {
				continue
			}
			for _, n := range names {
				pending.Remove(n)
			}
			if pending.Cardinality() == 0 {
				delete(r.pendings, dependent)
				ready = append(ready, dependent)
			}
		}

		// the first ready dependent is resolved first, along with what it unblocks
		worklist.PushAll(ready...)
	}
	return resolved
}

// unresolveCascade removes the given component and every resolved component
// depending on it from the resolved order. The caller holds the write lock.
func (r *Registry) unresolveCascade(reg *component.Registration) []component.Name {
	unresolved := newNameSet()
	var order []component.Name

	worklist := collection.NewStack(reg.Name())
	for !worklist.IsEmpty() {
		current, _ := worklist.Pop()
		if unresolved.Contains(current) {
			continue
		}
		unresolved.Add(current)
		order = append(order, current)

		names := r.namesOf(current)
		if current == reg.Name() {
			names = reg.Names()
		}

		for _, dependent := range r.dependentsOf(names...) {
			if r.isResolvedCanonical(dependent) && !unresolved.Contains(dependent) {
				worklist.Push(dependent)
			}
		}
	}

	kept := r.resolved[:0]
	for _, name := range r.resolved {
		if !unresolved.Contains(name) {
			kept = append(kept, name)
		}
	}
	clear(r.resolved[len(kept):])
	r.resolved = kept

	r.resolvedIndex = make(map[component.Name]int, len(r.resolved))
	for i, name := range r.resolved {
		r.resolvedIndex[name] = i
	}
	return order
}

// computePendings recomputes the pending set of a registered, unresolved component.
func (r *Registry) computePendings(name component.Name) {
	reg, ok := r.all[name]
	if !ok || r.isResolvedCanonical(name) {
		return
	}

	pending := newNameSet()
	for _, required := range reg.Requires() {
		if !r.isResolved(required) {
			pending.Add(required)
		}
	}
	r.pendings[name] = pending
}

// dependentsOf returns the registered components requiring any of the given
// names, in registration order.
func (r *Registry) dependentsOf(names ...component.Name) []component.Name {
	dependents := newNameSet()
	for _, name := range names {
		if requiredBy, ok := r.requirements[name]; ok {
			dependents = dependents.Union(requiredBy)
		}
	}

	out := dependents.ToSlice()
	slices.SortFunc(out, func(a, b component.Name) int {
		return compareSequence(r.sequence[a], r.sequence[b])
	})
	return out
}

func (r *Registry) namesOf(name component.Name) []component.Name {
	if reg, ok := r.all[name]; ok {
		return reg.Names()
	}
	return []component.Name{name}
}

func (r *Registry) requirementsOf(name component.Name) nameSet {
	set, ok := r.requirements[name]
	if !ok {
		set = newNameSet()
		r.requirements[name] = set
	}
	return set
}

func (r *Registry) registration(name component.Name) *component.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.all[name]
}

func (r *Registry) unalias(name component.Name) component.Name {
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	return name
}

func (r *Registry) contains(name component.Name) bool {
	_, ok := r.all[r.unalias(name)]
	return ok
}

func (r *Registry) isResolved(name component.Name) bool {
	return r.isResolvedCanonical(r.unalias(name))
}

func (r *Registry) isResolvedCanonical(name component.Name) bool {
	_, ok := r.resolvedIndex[name]
	return ok
}

func compareSequence(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
