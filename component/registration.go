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

package component

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	gerrors "github.com/tochemey/compkit/errors"
	"github.com/tochemey/compkit/internal/validation"
)

// Host is the container side of a registration. A registration calls back
// its host on state transitions so that services and extensions follow the
// lifecycle of the component.
type Host interface {
	// RegisterServices indexes the services provided by the registration.
	RegisterServices(reg *Registration)
	// UnregisterServices removes the services provided by the registration.
	UnregisterServices(reg *Registration)
	// RegisterExtensions hands over the extensions waiting for the freshly
	// activated registration and applies its own contributed extensions.
	RegisterExtensions(ctx context.Context, reg *Registration)
	// UnregisterExtensions withdraws the extensions contributed by the registration.
	UnregisterExtensions(ctx context.Context, reg *Registration)
	// Notify publishes a lifecycle event.
	Notify(event *Event)
}

type noopHost struct{}

func (noopHost) RegisterServices(*Registration)                       {}
func (noopHost) UnregisterServices(*Registration)                     {}
func (noopHost) RegisterExtensions(context.Context, *Registration)   {}
func (noopHost) UnregisterExtensions(context.Context, *Registration) {}
func (noopHost) Notify(*Event)                                        {}

// Registration is the static description of a component together with its
// live instance and lifecycle state.
type Registration struct {
	name       Name
	instance   Component
	aliases    []Name
	requires   []Name
	points     []*ExtensionPoint
	extensions []*Extension
	services   []string
	origin     string
	startOrder int

	state *atomic.Int32

	hostMu sync.RWMutex
	host   Host
}

// NewRegistration creates a Registration for the given component instance.
func NewRegistration(name Name, instance Component, opts ...RegistrationOption) *Registration {
	reg := &Registration{
		name:     name,
		instance: instance,
		state:    atomic.NewInt32(int32(Unregistered)),
		host:     noopHost{},
	}

	for _, opt := range opts {
		opt.Apply(reg)
	}

	return reg
}

// Validate checks that the registration is well formed.
func (r *Registration) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddValidator(r.name).
		AddAssertion(r.instance != nil, fmt.Sprintf("component=(%s) instance is required", r.name))

	for _, alias := range r.aliases {
		chain.AddValidator(alias).
			AddAssertion(alias != r.name, fmt.Sprintf("component=(%s) cannot alias itself", r.name))
	}

	for _, required := range r.requires {
		chain.AddValidator(required)
	}

	points := make(map[string]struct{}, len(r.points))
	for _, point := range r.points {
		_, duplicate := points[point.Name()]
		chain.AddAssertion(point.Name() != "" && !duplicate, fmt.Sprintf("component=(%s) invalid or duplicate extension point %q", r.name, point.Name()))
		points[point.Name()] = struct{}{}
	}

	for _, service := range r.services {
		chain.AddAssertion(service != "", fmt.Sprintf("component=(%s) service name is required", r.name))
	}

	if err := chain.Validate(); err != nil {
		return gerrors.NewErrInvalidRegistration(err)
	}
	return nil
}

// Name returns the canonical name
func (r *Registration) Name() Name {
	return r.name
}

// Names returns the canonical name followed by the aliases.
func (r *Registration) Names() []Name {
	return append([]Name{r.name}, r.aliases...)
}

// Aliases returns the alternate names of the component
func (r *Registration) Aliases() []Name {
	return slices.Clone(r.aliases)
}

// Requires returns the names the component depends on
func (r *Registration) Requires() []Name {
	return slices.Clone(r.requires)
}

// ExtensionPoints returns the declared extension points
func (r *Registration) ExtensionPoints() []*ExtensionPoint {
	return slices.Clone(r.points)
}

// ExtensionPoint returns the extension point with the given name.
func (r *Registration) ExtensionPoint(name string) (*ExtensionPoint, bool) {
	for _, point := range r.points {
		if point.Name() == name {
			return point, true
		}
	}
	return nil, false
}

// Extensions returns the extensions contributed by the component
func (r *Registration) Extensions() []*Extension {
	return slices.Clone(r.extensions)
}

// Services returns the provided service names
func (r *Registration) Services() []string {
	return slices.Clone(r.services)
}

// Origin returns the origin token, empty when not set.
func (r *Registration) Origin() string {
	return r.origin
}

// StartOrder returns the declared start order
func (r *Registration) StartOrder() int {
	return r.startOrder
}

// Instance returns the component instance.
func (r *Registration) Instance() Component {
	return r.instance
}

// State returns the current lifecycle state
func (r *Registration) State() State {
	return State(r.state.Load())
}

// IsLive reports whether the instance is activated.
func (r *Registration) IsLive() bool {
	return r.State().IsLive()
}

// String returns the canonical name
func (r *Registration) String() string {
	return r.name.String()
}

// Attach binds the registration to its host.
func (r *Registration) Attach(host Host) {
	if host == nil {
		host = noopHost{}
	}
	r.hostMu.Lock()
	r.host = host
	r.hostMu.Unlock()
}

func (r *Registration) getHost() Host {
	r.hostMu.RLock()
	host := r.host
	r.hostMu.RUnlock()
	return host
}

// Register moves the registration to the Registered state.
func (r *Registration) Register() {
	r.state.Store(int32(Registered))
	r.getHost().Notify(NewEvent(EventRegistered, r.name))
}

// Resolve moves a Registered registration to Resolved and publishes its services.
// Resolving a registration that is not Registered is an invariant violation.
func (r *Registration) Resolve() {
	if !r.state.CompareAndSwap(int32(Registered), int32(Resolved)) {
		panic(gerrors.NewInvariantError(fmt.Errorf("component=(%s) state=%s %w", r.name, r.State(), gerrors.ErrAlreadyResolved)))
	}

	host := r.getHost()
	host.RegisterServices(r)
	host.Notify(NewEvent(EventResolved, r.name))
}

// Unresolve deactivates a live instance, withdraws the services and moves the
// registration back to Registered. Registrations that are not resolved are left untouched.
func (r *Registration) Unresolve(ctx context.Context) error {
	state := r.State()
	if !state.IsResolved() {
		return nil
	}

	var err error
	if state.IsLive() {
		err = r.Deactivate(ctx, true)
	}

	host := r.getHost()
	host.UnregisterServices(r)
	r.state.Store(int32(Registered))
	host.Notify(NewEvent(EventUnresolved, r.name))
	return err
}

// Unregister moves the registration to the Unregistered state.
func (r *Registration) Unregister() {
	r.state.Store(int32(Unregistered))
	r.getHost().Notify(NewEvent(EventUnregistered, r.name))
}

// Reconcile sets the state matching the given resolution without running any
// callback. It is used when a registry is restored from a snapshot.
func (r *Registration) Reconcile(resolved bool) {
	if resolved {
		r.state.Store(int32(Resolved))
		return
	}
	r.state.Store(int32(Registered))
}

// Activate activates a Resolved registration. It is a no-op when the instance
// is already live. On failure the registration goes back to Resolved.
func (r *Registration) Activate(ctx context.Context) error {
	if !r.state.CompareAndSwap(int32(Resolved), int32(Activating)) {
		state := r.State()
		if state.IsLive() {
			return nil
		}
		return gerrors.NewErrActivationFailure(r.name.String(), fmt.Errorf("unexpected state %s", state))
	}

	host := r.getHost()
	host.Notify(NewEvent(EventActivating, r.name))

	if err := safeCall(ctx, r.instance.Activate); err != nil {
		r.state.Store(int32(Resolved))
		return gerrors.NewErrActivationFailure(r.name.String(), err)
	}

	r.state.Store(int32(Activated))
	host.RegisterExtensions(ctx, r)
	host.Notify(NewEvent(EventActivated, r.name))
	return nil
}

// Start starts an Activated registration. On failure the registration is
// marked StartFailure.
func (r *Registration) Start(ctx context.Context) error {
	if !r.state.CompareAndSwap(int32(Activated), int32(Started)) {
		state := r.State()
		if state == Started {
			return nil
		}
		return gerrors.NewErrStartFailure(r.name.String(), fmt.Errorf("unexpected state %s", state))
	}

	host := r.getHost()
	if err := safeCall(ctx, r.instance.Start); err != nil {
		r.state.Store(int32(StartFailure))
		event := NewEvent(EventStartFailure, r.name)
		event.Err = err
		host.Notify(event)
		return gerrors.NewErrStartFailure(r.name.String(), err)
	}

	host.Notify(NewEvent(EventStarted, r.name))
	return nil
}

// Stop stops a Started registration, leaving it Activated even when the
// callback fails. Registrations in any other state are left untouched.
func (r *Registration) Stop(ctx context.Context) error {
	if !r.state.CompareAndSwap(int32(Started), int32(Activated)) {
		return nil
	}

	err := safeCall(ctx, r.instance.Stop)
	r.getHost().Notify(NewEvent(EventStopped, r.name))
	if err != nil {
		return gerrors.NewErrStopFailure(r.name.String(), err)
	}
	return nil
}

// Deactivate brings a live registration back to Resolved, stopping it first
// when needed. Contributed extensions are withdrawn only when unregisterExtensions is set.
func (r *Registration) Deactivate(ctx context.Context, unregisterExtensions bool) error {
	if !r.IsLive() {
		return nil
	}

	err := r.Stop(ctx)

	host := r.getHost()
	if unregisterExtensions {
		host.UnregisterExtensions(ctx, r)
	}

	if deactivateErr := safeCall(ctx, r.instance.Deactivate); deactivateErr != nil {
		err = multierr.Append(err, gerrors.NewErrDeactivationFailure(r.name.String(), deactivateErr))
	}

	r.state.Store(int32(Resolved))
	host.Notify(NewEvent(EventDeactivated, r.name))
	return err
}

func safeCall(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if invariant, ok := r.(*gerrors.InvariantError); ok {
				panic(invariant)
			}
			err = gerrors.Recovered(r)
		}
	}()
	return fn(ctx)
}
