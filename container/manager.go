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

package container

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"
	goset "github.com/deckarep/golang-set/v2"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	"github.com/tochemey/compkit/component"
	gerrors "github.com/tochemey/compkit/errors"
	"github.com/tochemey/compkit/eventstream"
	"github.com/tochemey/compkit/internal/chain"
	"github.com/tochemey/compkit/internal/xsync"
	"github.com/tochemey/compkit/log"
	"github.com/tochemey/compkit/registry"
)

// Manager drives the lifecycle of the components of a registry.
//
// Every mutating operation runs under a single manager-wide lock, component
// callbacks included. Component callbacks and listeners may call back into the
// manager provided they pass on the context they were handed: that context
// carries the held lock and lets the nested call run without taking it again.
// A callback calling back with an unrelated context blocks until the operation
// in flight completes.
type Manager interface {
	// Name returns the manager name
	Name() string
	// Register admits a registration. Blacklisted names and names or aliases
	// already registered are rejected. While a snapshot is held the registration
	// is stashed until the next Refresh.
	Register(ctx context.Context, reg *component.Registration) error
	// Unregister removes the component with the given name or alias, unresolving
	// its dependents. It returns false when no such component is registered.
	Unregister(ctx context.Context, name component.Name) bool
	// UnregisterByOrigin removes the component registered from the given origin.
	UnregisterByOrigin(ctx context.Context, origin string) bool
	// HasComponentFromOrigin reports whether a component was registered from the origin.
	HasComponentFromOrigin(origin string) bool
	// RegisterExtension contributes an extension to its target. When the target
	// is not active yet the extension is parked until the target activates.
	RegisterExtension(ctx context.Context, extension *component.Extension)
	// UnregisterExtension withdraws a contributed or parked extension.
	UnregisterExtension(ctx context.Context, extension *component.Extension)
	// Start activates the resolved components and starts them.
	// It returns false when the manager is already started.
	Start(ctx context.Context) bool
	// Stop stops and deactivates the components.
	// It returns false when the manager is not started.
	Stop(ctx context.Context) bool
	// IsStarted reports whether the manager is started
	IsStarted() bool
	// Snapshot freezes a copy of the registry. Subsequent registrations are
	// stashed until Refresh.
	Snapshot(ctx context.Context)
	// HasSnapshot reports whether a snapshot is held. It never blocks.
	HasSnapshot() bool
	// HasChanged reports whether the registry drifted from the snapshot
	HasChanged() bool
	// IsStashEmpty reports whether no registration is stashed
	IsStashEmpty() bool
	// Reset stops the manager and restores the snapshot when the registry
	// drifted from it. It returns whether the manager was stopped.
	Reset(ctx context.Context) bool
	// Restart stops, or resets when reset is set, then starts the manager.
	Restart(ctx context.Context, reset bool)
	// Refresh replays the stashed registrations. It returns false when the stash is empty.
	Refresh(ctx context.Context, reset bool) bool
	// Service returns the instance providing the named service, activating
	// its provider on demand. The on-demand activation runs under the manager
	// lock and therefore waits for a Start or Stop in flight.
	Service(ctx context.Context, service string) (any, error)
	// ComponentProvidingService returns the registration providing the named service
	ComponentProvidingService(service string) (*component.Registration, bool)
	// Services returns the provided service names, sorted
	Services() []string
	// Registration returns the registration with the given name or alias
	Registration(name component.Name) (*component.Registration, bool)
	// Component returns the live instance of an activated component
	Component(name component.Name) (component.Component, bool)
	// IsRegistered reports whether a component with the given name or alias is registered
	IsRegistered(name component.Name) bool
	// Registrations returns every registration in registration order
	Registrations() []*component.Registration
	// PendingRegistrations returns the components waiting on requirements
	// together with the missing names
	PendingRegistrations() map[component.Name][]component.Name
	// MissingRegistrations returns the parked extensions grouped by declarer
	MissingRegistrations() map[component.Name][]*component.Extension
	// ResolvedRegistrations returns the resolved registrations in resolution order
	ResolvedRegistrations() []*component.Registration
	// ActivatingRegistrations returns the registrations being activated
	ActivatingRegistrations() []*component.Registration
	// StartFailureRegistrations returns the registrations that failed to start
	StartFailureRegistrations() []*component.Registration
	// Size returns the number of registered components
	Size() int
	// Blacklist returns the blacklisted names, sorted
	Blacklist() []component.Name
	// SetBlacklist replaces the blacklisted names
	SetBlacklist(names ...component.Name)
	// AddListener adds a start and stop listener
	AddListener(listener Listener)
	// RemoveListener removes a listener
	RemoveListener(listener Listener)
	// Subscribe returns a subscriber receiving the events of the given kinds,
	// or every event when no kind is given.
	Subscribe(kinds ...component.EventKind) eventstream.Subscriber
	// Unsubscribe shuts the subscriber down
	Unsubscribe(subscriber eventstream.Subscriber)
	// Warnings returns the sink recording the handled errors
	Warnings() *Warnings
	// Registry returns the live registry
	Registry() *registry.Registry
	// Shutdown stops the manager and releases its resources.
	Shutdown(ctx context.Context) error
}

type manager struct {
	mu   sync.Mutex
	name string

	registry *atomic.Pointer[registry.Registry]
	snapshot *atomic.Pointer[registry.Registry]
	// registrations deferred while a snapshot is held
	stash    *gods.Queue
	flushing bool
	changed  *atomic.Bool
	started  *atomic.Bool
	shutdown *atomic.Bool

	startedList *xsync.List[*component.Registration]
	services    *xsync.Map[string, *component.Registration]

	extMu sync.Mutex
	// target name, as declared -> parked extensions
	pendingExtensions map[component.Name][]*component.Extension

	blacklist goset.Set[component.Name]
	listeners *xsync.List[Listener]
	events    *eventstream.EventsStream
	warnings  *Warnings
	logger    log.Logger

	activationTries int

	metricsEnabled bool
	meterProvider  otelmetric.MeterProvider
	metrics        *containerMetrics
}

var (
	_ Manager        = (*manager)(nil)
	_ component.Host = (*manager)(nil)
)

// NewManager creates a Manager with an empty registry.
func NewManager(opts ...Option) (Manager, error) {
	m := &manager{
		name:              "default",
		registry:          atomic.NewPointer[registry.Registry](nil),
		snapshot:          atomic.NewPointer[registry.Registry](nil),
		changed:           atomic.NewBool(false),
		started:           atomic.NewBool(false),
		shutdown:          atomic.NewBool(false),
		startedList:       xsync.NewList[*component.Registration](),
		services:          xsync.NewMap[string, *component.Registration](),
		pendingExtensions: make(map[component.Name][]*component.Extension),
		blacklist:         goset.NewSet[component.Name](),
		listeners:         xsync.NewList[Listener](),
		events:            eventstream.New(),
		warnings:          DefaultWarnings,
		logger:            log.DefaultLogger,
		activationTries:   1,
		stash:             gods.New(8),
	}

	for _, opt := range opts {
		opt.Apply(m)
	}

	if m.logger == nil {
		m.logger = log.DiscardLogger
	}

	if m.warnings == nil {
		m.warnings = DefaultWarnings
	}

	if m.activationTries < 1 {
		m.activationTries = 1
	}

	m.logger = m.logger.With("container", m.name)

	m.registry.Store(registry.New(registry.WithLogger(m.logger)))

	if m.metricsEnabled {
		metrics, err := newContainerMetrics(m)
		if err != nil {
			return nil, fmt.Errorf("failed to register container metrics: %w", err)
		}
		m.metrics = metrics
	}

	return m, nil
}

func (m *manager) Name() string {
	return m.name
}

// lockKey marks a context derived while the manager lock is held.
type lockKey struct{}

// lock acquires the manager lock unless ctx was derived under it, which is the
// case of the context handed to component callbacks and listeners. It returns
// the context to pass down together with the release function.
func (m *manager) lock(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}

	if holder, _ := ctx.Value(lockKey{}).(*manager); holder == m {
		return ctx, func() {}
	}

	m.mu.Lock()
	return context.WithValue(ctx, lockKey{}, m), m.mu.Unlock
}

func (m *manager) Register(ctx context.Context, reg *component.Registration) error {
	if reg == nil {
		err := gerrors.NewErrInvalidRegistration(errors.New("registration is required"))
		m.handleError(err)
		return err
	}

	if err := reg.Validate(); err != nil {
		m.handleError(err)
		return err
	}

	ctx, unlock := m.lock(ctx)
	defer unlock()
	return m.register(ctx, reg)
}

func (m *manager) register(ctx context.Context, reg *component.Registration) error {
	name := reg.Name()
	if m.blacklist.Contains(name) {
		m.logger.Warnf("component=(%s) is blacklisted. Ignoring.", name)
		return gerrors.NewErrBlacklisted(name.String())
	}

	current := m.registry.Load()
	if err := m.checkAdmission(current, reg); err != nil {
		m.handleError(err)
		return err
	}

	if m.snapshot.Load() != nil && !m.flushing {
		if err := m.stash.Put(reg); err != nil {
			m.handleError(fmt.Errorf("component=(%s) failed to stash: %w", name, err))
			return err
		}
		m.logger.Debugf("component=(%s) stashed until next refresh", name)
		return nil
	}

	reg.Attach(m)

	var resolved bool
	err := chain.New(chain.WithContext(ctx)).
		AddContextRunner(func(ctx context.Context) error {
			resolved = current.AddComponent(ctx, reg)
			return nil
		}).
		Run()
	if err != nil {
		err = fmt.Errorf("component=(%s) failed to register: %w", name, err)
		m.handleError(err)
		return err
	}

	if !resolved {
		if missing := current.MissingDependencies(name); len(missing) > 0 {
			m.logger.Infof("component=(%s) registration delayed. Waiting for: %v", name, missing)
		}
	}
	return nil
}

// checkAdmission rejects names, aliases and services already taken.
func (m *manager) checkAdmission(current *registry.Registry, reg *component.Registration) error {
	name := reg.Name()
	if current.Contains(name) {
		return gerrors.NewErrDuplicateComponent(name.String())
	}

	for _, alias := range reg.Aliases() {
		if owner, ok := current.Canonical(alias); ok {
			return gerrors.NewErrDuplicateAlias(alias.String(), owner.String())
		}
	}

	services := reg.Services()
	if len(services) == 0 {
		return nil
	}

	for _, other := range current.Components() {
		for _, service := range other.Services() {
			if slices.Contains(services, service) {
				return gerrors.NewErrServiceAlreadyProvided(service, other.Name().String(), name.String())
			}
		}
	}
	return nil
}

func (m *manager) Unregister(ctx context.Context, name component.Name) bool {
	ctx, unlock := m.lock(ctx)
	defer unlock()
	return m.unregister(ctx, name)
}

func (m *manager) unregister(ctx context.Context, name component.Name) bool {
	current := m.registry.Load()

	var removed *component.Registration
	err := chain.New(chain.WithContext(ctx)).
		AddContextRunner(func(ctx context.Context) error {
			var err error
			removed, err = current.RemoveComponent(ctx, name)
			return err
		}).
		Run()
	if err != nil {
		m.logger.Error(gerrors.NewErrUnregisterFailure(name.String(), err))
	}

	if removed == nil {
		return false
	}

	m.purgeExtensionsDeclaredBy(removed.Name())
	if m.snapshot.Load() != nil {
		m.changed.Store(true)
	}
	return true
}

func (m *manager) UnregisterByOrigin(ctx context.Context, origin string) bool {
	ctx, unlock := m.lock(ctx)
	defer unlock()

	name, ok := m.registry.Load().ComponentFromOrigin(origin)
	if !ok {
		return false
	}
	return m.unregister(ctx, name)
}

func (m *manager) HasComponentFromOrigin(origin string) bool {
	return m.registry.Load().HasOrigin(origin)
}

// Notify publishes the event to the subscribers of its kind.
func (m *manager) Notify(event *component.Event) {
	if event.Kind == component.EventUnregistered {
		m.startedList.RemoveFunc(func(reg *component.Registration) bool {
			return reg.Name() == event.Component
		})
	}

	if m.logger.Enabled(log.DebugLevel) {
		if event.Err != nil {
			m.logger.Debugf("component=(%s) event=(%s) err=(%v)", event.Component, event.Kind, event.Err)
		} else {
			m.logger.Debugf("component=(%s) event=(%s)", event.Component, event.Kind)
		}
	}

	m.events.Publish(event.Kind.String(), event)
}

func (m *manager) handleError(err error) {
	m.logger.Error(err)
	m.warnings.Add(err)
}

func (m *manager) Registration(name component.Name) (*component.Registration, bool) {
	return m.registry.Load().Component(name)
}

func (m *manager) Component(name component.Name) (component.Component, bool) {
	reg, ok := m.Registration(name)
	if !ok || !reg.IsLive() {
		return nil, false
	}
	return reg.Instance(), true
}

func (m *manager) IsRegistered(name component.Name) bool {
	return m.registry.Load().Contains(name)
}

func (m *manager) Registrations() []*component.Registration {
	return m.registry.Load().Components()
}

func (m *manager) PendingRegistrations() map[component.Name][]component.Name {
	return m.registry.Load().PendingComponents()
}

func (m *manager) ResolvedRegistrations() []*component.Registration {
	return m.registry.Load().Resolved()
}

func (m *manager) ActivatingRegistrations() []*component.Registration {
	return m.registrationsIn(component.Activating)
}

func (m *manager) StartFailureRegistrations() []*component.Registration {
	return m.registrationsIn(component.StartFailure)
}

func (m *manager) registrationsIn(state component.State) []*component.Registration {
	var regs []*component.Registration
	for _, reg := range m.registry.Load().Components() {
		if reg.State() == state {
			regs = append(regs, reg)
		}
	}
	return regs
}

func (m *manager) Size() int {
	return m.registry.Load().Size()
}

func (m *manager) Blacklist() []component.Name {
	names := m.blacklist.ToSlice()
	slices.Sort(names)
	return names
}

func (m *manager) SetBlacklist(names ...component.Name) {
	m.blacklist.Clear()
	m.blacklist.Append(names...)
}

func (m *manager) AddListener(listener Listener) {
	m.listeners.Append(listener)
}

func (m *manager) RemoveListener(listener Listener) {
	m.listeners.Remove(listener)
}

func (m *manager) Subscribe(kinds ...component.EventKind) eventstream.Subscriber {
	if len(kinds) == 0 {
		kinds = component.EventKinds()
	}

	subscriber := m.events.AddSubscriber()
	for _, kind := range kinds {
		m.events.Subscribe(subscriber, kind.String())
	}
	return subscriber
}

func (m *manager) Unsubscribe(subscriber eventstream.Subscriber) {
	m.events.RemoveSubscriber(subscriber)
}

func (m *manager) Warnings() *Warnings {
	return m.warnings
}

func (m *manager) Registry() *registry.Registry {
	return m.registry.Load()
}
