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
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/multierr"

	"github.com/tochemey/compkit/component"
	"github.com/tochemey/compkit/internal/chain"
)

func (m *manager) Start(ctx context.Context) bool {
	ctx, unlock := m.lock(ctx)
	defer unlock()
	return m.start(ctx)
}

// start activates the resolved components in resolution order, then starts
// them sorted by start order and name. Failures are isolated per component.
func (m *manager) start(ctx context.Context) bool {
	if m.started.Load() {
		return false
	}

	m.logger.Infof("Starting component container (%s)..", m.name)
	m.notifyListeners(ctx, Listener.BeforeStart)
	m.clearPendingExtensions()

	resolved := m.registry.Load().Resolved()
	activation := chain.New(chain.WithRunAll(), chain.WithContext(ctx))
	for _, reg := range resolved {
		activation.AddContextRunner(func(ctx context.Context) error {
			return m.activate(ctx, reg)
		})
	}

	for _, err := range multierr.Errors(activation.Run()) {
		m.handleError(err)
		m.metrics.recordActivationFailure(ctx)
	}

	live := make([]*component.Registration, 0, len(resolved))
	for _, reg := range resolved {
		if reg.State() == component.Activated {
			live = append(live, reg)
		}
	}

	slices.SortStableFunc(live, func(a, b *component.Registration) int {
		if c := cmp.Compare(a.StartOrder(), b.StartOrder()); c != 0 {
			return c
		}
		return a.Name().Compare(b.Name())
	})

	for _, reg := range live {
		if err := reg.Start(ctx); err != nil {
			m.handleError(err)
			m.metrics.recordStartFailure(ctx)
		}
	}

	m.startedList.Reset()
	m.startedList.AppendMany(live...)
	m.started.Store(true)

	m.notifyListeners(ctx, Listener.AfterStart)
	m.logger.Infof("Component container (%s) started with %d components (%d failures)", m.name, len(live), len(m.StartFailureRegistrations()))
	return true
}

// activate activates the registration, retrying as configured.
func (m *manager) activate(ctx context.Context, reg *component.Registration) error {
	if m.activationTries <= 1 {
		return reg.Activate(ctx)
	}

	retrier := retry.NewRetrier(m.activationTries, time.Millisecond, 100*time.Millisecond)
	return retrier.RunContext(ctx, reg.Activate)
}

func (m *manager) Stop(ctx context.Context) bool {
	ctx, unlock := m.lock(ctx)
	defer unlock()
	return m.stop(ctx)
}

// stop stops the started components in reverse start order, then deactivates
// the live ones in reverse resolution order. Failures are isolated per component.
func (m *manager) stop(ctx context.Context) bool {
	if !m.started.Load() {
		return false
	}

	m.logger.Infof("Stopping component container (%s)..", m.name)
	m.notifyListeners(ctx, Listener.BeforeStop)

	stopping := chain.New(chain.WithRunAll(), chain.WithContext(ctx))
	for _, reg := range slices.Backward(m.startedList.Items()) {
		stopping.AddContextRunnerIf(reg.State() == component.Started, reg.Stop)
	}

	for _, reg := range slices.Backward(m.registry.Load().Resolved()) {
		stopping.AddContextRunnerIf(reg.IsLive(), func(ctx context.Context) error {
			return reg.Deactivate(ctx, false)
		})
	}

	for _, err := range multierr.Errors(stopping.Run()) {
		m.handleError(err)
	}

	m.clearPendingExtensions()
	m.startedList.Reset()
	m.started.Store(false)

	m.notifyListeners(ctx, Listener.AfterStop)
	m.logger.Infof("Component container (%s) stopped", m.name)
	return true
}

func (m *manager) IsStarted() bool {
	return m.started.Load()
}

func (m *manager) Snapshot(ctx context.Context) {
	_, unlock := m.lock(ctx)
	defer unlock()

	snapshot := m.registry.Load().Clone()
	m.snapshot.Store(snapshot)
	m.changed.Store(false)
	m.logger.Debugf("component container (%s) snapshot taken with %d components", m.name, snapshot.Size())
}

func (m *manager) HasSnapshot() bool {
	return m.snapshot.Load() != nil
}

func (m *manager) HasChanged() bool {
	return m.changed.Load()
}

func (m *manager) IsStashEmpty() bool {
	return m.stash.Empty()
}

func (m *manager) Reset(ctx context.Context) bool {
	ctx, unlock := m.lock(ctx)
	defer unlock()
	return m.reset(ctx)
}

func (m *manager) reset(ctx context.Context) bool {
	stopped := m.stop(ctx)
	if m.changed.Load() && m.snapshot.Load() != nil {
		m.restore(ctx)
	}
	return stopped
}

// restore replaces the live registry with a copy of the snapshot and brings
// the registrations in line with the restored graph.
func (m *manager) restore(ctx context.Context) {
	current := m.registry.Load()
	restored := m.snapshot.Load().Clone()

	for _, reg := range current.Components() {
		if kept, ok := restored.Component(reg.Name()); ok && kept == reg {
			continue
		}

		if err := reg.Deactivate(ctx, true); err != nil {
			m.handleError(err)
		}
		m.purgeExtensionsDeclaredBy(reg.Name())
		reg.Unregister()
	}

	m.services.Reset()
	for _, reg := range restored.Components() {
		resolved := restored.IsResolved(reg.Name())
		reg.Attach(m)

		if reg.IsLive() && resolved {
			m.indexServices(reg)
			continue
		}

		if err := reg.Deactivate(ctx, true); err != nil {
			m.handleError(err)
		}

		reg.Reconcile(resolved)
		if resolved {
			m.indexServices(reg)
		}
	}

	m.registry.Store(restored)
	m.changed.Store(false)
	m.logger.Infof("component container (%s) restored to snapshot with %d components", m.name, restored.Size())
}

func (m *manager) Restart(ctx context.Context, reset bool) {
	ctx, unlock := m.lock(ctx)
	defer unlock()

	if reset {
		m.reset(ctx)
	} else {
		m.stop(ctx)
	}
	m.start(ctx)
}

func (m *manager) Refresh(ctx context.Context, reset bool) bool {
	ctx, unlock := m.lock(ctx)
	defer unlock()

	if m.stash.Empty() {
		return false
	}

	var requireStart bool
	if reset {
		requireStart = m.reset(ctx)
	} else {
		requireStart = m.stop(ctx)
	}

	m.flush(ctx, m.takeStash())
	m.changed.Store(true)

	if requireStart {
		m.start(ctx)
	}
	return true
}

// takeStash empties the stash and returns its registrations in stashing order.
func (m *manager) takeStash() []*component.Registration {
	size := m.stash.Len()
	if size == 0 {
		return nil
	}

	// the stash is only filled under the manager lock, Get cannot block here
	items, err := m.stash.Get(size)
	if err != nil {
		m.handleError(fmt.Errorf("failed to read the stash: %w", err))
		return nil
	}

	stash := make([]*component.Registration, 0, len(items))
	for _, item := range items {
		if reg, ok := item.(*component.Registration); ok {
			stash = append(stash, reg)
		}
	}
	return stash
}

// flush registers the stashed registrations directly into the live registry.
func (m *manager) flush(ctx context.Context, stash []*component.Registration) {
	m.flushing = true
	defer func() { m.flushing = false }()

	m.logger.Debugf("component container (%s) replaying %d stashed registrations", m.name, len(stash))
	for _, reg := range stash {
		// admission errors are recorded by register
		_ = m.register(ctx, reg)
	}
}

// Shutdown stops the manager, unregisters every component, closes the event
// subscribers and drops the snapshot and the stash.
func (m *manager) Shutdown(ctx context.Context) error {
	if !m.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	ctx, unlock := m.lock(ctx)
	defer unlock()

	m.logger.Infof("Shutting down component container (%s)..", m.name)
	m.stop(ctx)

	var err error
	current := m.registry.Load()
	for _, reg := range slices.Backward(current.Components()) {
		if !current.Contains(reg.Name()) {
			continue
		}
		if _, removeErr := current.RemoveComponent(ctx, reg.Name()); removeErr != nil {
			err = multierr.Append(err, removeErr)
		}
	}

	m.clearPendingExtensions()
	m.services.Reset()
	m.listeners.Reset()
	m.snapshot.Store(nil)
	m.takeStash()
	m.changed.Store(false)
	m.events.Close()

	err = multierr.Append(err, m.metrics.unregister())

	m.logger.Infof("Component container (%s) shut down", m.name)
	return multierr.Append(err, m.logger.Flush())
}

func (m *manager) notifyListeners(ctx context.Context, notify func(Listener, context.Context, Manager)) {
	listeners := m.listeners.Items()
	if len(listeners) == 0 {
		return
	}

	notification := chain.New(chain.WithRunAll(), chain.WithContext(ctx))
	for _, listener := range listeners {
		notification.AddContextRunner(func(ctx context.Context) error {
			notify(listener, ctx, m)
			return nil
		})
	}

	if err := notification.Run(); err != nil {
		m.handleError(err)
	}
}
