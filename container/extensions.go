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
	"fmt"
	"slices"

	"github.com/tochemey/compkit/component"
	gerrors "github.com/tochemey/compkit/errors"
	"github.com/tochemey/compkit/internal/chain"
)

func (m *manager) RegisterExtension(ctx context.Context, extension *component.Extension) {
	if extension == nil {
		return
	}

	ctx, unlock := m.lock(ctx)
	defer unlock()
	m.registerExtension(ctx, extension)
}

// registerExtension applies the extension to its live target or parks it.
func (m *manager) registerExtension(ctx context.Context, extension *component.Extension) {
	target, ok := m.registry.Load().Component(extension.Target())
	if !ok || !target.IsLive() {
		m.park(extension)
		m.Notify(component.NewExtensionEvent(component.EventExtensionPending, extension))
		return
	}

	if _, ok := target.ExtensionPoint(extension.Point()); !ok {
		m.park(extension)
		m.handleError(gerrors.NewErrExtensionFailure(target.Name().String(), extension.Point(),
			fmt.Errorf("extension point not declared, contributed by %q", extension.Declarer())))
		return
	}

	m.applyExtension(ctx, target, extension)
}

func (m *manager) applyExtension(ctx context.Context, target *component.Registration, extension *component.Extension) {
	point, _ := target.ExtensionPoint(extension.Point())
	err := chain.New(chain.WithFailFast(), chain.WithContext(ctx)).
		AddRunner(func() error { return point.Load(extension) }).
		AddContextRunner(func(ctx context.Context) error {
			return target.Instance().RegisterExtension(ctx, extension)
		}).
		Run()
	if err != nil {
		m.handleError(gerrors.NewErrExtensionFailure(target.Name().String(), extension.Point(), err))
		return
	}

	m.Notify(component.NewExtensionEvent(component.EventExtensionRegistered, extension))
}

func (m *manager) UnregisterExtension(ctx context.Context, extension *component.Extension) {
	if extension == nil {
		return
	}

	ctx, unlock := m.lock(ctx)
	defer unlock()
	m.unregisterExtension(ctx, extension)
}

// unregisterExtension removes a parked extension, or withdraws it from its live target.
func (m *manager) unregisterExtension(ctx context.Context, extension *component.Extension) {
	if m.unpark(extension) {
		m.Notify(component.NewExtensionEvent(component.EventExtensionUnregistered, extension))
		return
	}

	target, ok := m.registry.Load().Component(extension.Target())
	if !ok || !target.IsLive() {
		return
	}

	err := chain.New(chain.WithContext(ctx)).
		AddContextRunner(func(ctx context.Context) error {
			return target.Instance().UnregisterExtension(ctx, extension)
		}).
		Run()
	if err != nil {
		m.handleError(gerrors.NewErrExtensionFailure(target.Name().String(), extension.Point(), err))
	}

	m.Notify(component.NewExtensionEvent(component.EventExtensionUnregistered, extension))
}

// RegisterExtensions applies the extensions parked for the freshly activated
// registration, then contributes its own extensions.
func (m *manager) RegisterExtensions(ctx context.Context, reg *component.Registration) {
	for _, extension := range m.drain(reg) {
		m.applyExtension(ctx, reg, extension)
	}

	for _, extension := range reg.Extensions() {
		m.registerExtension(ctx, extension)
	}
}

// UnregisterExtensions withdraws the extensions contributed by the registration.
func (m *manager) UnregisterExtensions(ctx context.Context, reg *component.Registration) {
	for _, extension := range reg.Extensions() {
		m.unregisterExtension(ctx, extension)
	}
}

func (m *manager) MissingRegistrations() map[component.Name][]*component.Extension {
	m.extMu.Lock()
	defer m.extMu.Unlock()

	missing := make(map[component.Name][]*component.Extension)
	for _, extensions := range m.pendingExtensions {
		for _, extension := range extensions {
			declarer := extension.Declarer()
			missing[declarer] = append(missing[declarer], extension)
		}
	}
	return missing
}

func (m *manager) park(extension *component.Extension) {
	m.extMu.Lock()
	target := extension.Target()
	if !slices.Contains(m.pendingExtensions[target], extension) {
		m.pendingExtensions[target] = append(m.pendingExtensions[target], extension)
	}
	m.extMu.Unlock()
}

func (m *manager) unpark(extension *component.Extension) bool {
	m.extMu.Lock()
	defer m.extMu.Unlock()

	target := extension.Target()
	pending := m.pendingExtensions[target]
	index := slices.Index(pending, extension)
	if index < 0 {
		return false
	}

	pending = slices.Delete(pending, index, index+1)
	if len(pending) == 0 {
		delete(m.pendingExtensions, target)
	} else {
		m.pendingExtensions[target] = pending
	}
	return true
}

// drain removes and returns the parked extensions targeting one of the
// registration names through a declared extension point.
func (m *manager) drain(reg *component.Registration) []*component.Extension {
	m.extMu.Lock()
	defer m.extMu.Unlock()

	var drained []*component.Extension
	for _, name := range reg.Names() {
		pending, ok := m.pendingExtensions[name]
		if !ok {
			continue
		}

		kept := pending[:0]
		for _, extension := range pending {
			if _, declared := reg.ExtensionPoint(extension.Point()); declared {
				drained = append(drained, extension)
				continue
			}
			kept = append(kept, extension)
		}

		if len(kept) == 0 {
			delete(m.pendingExtensions, name)
		} else {
			m.pendingExtensions[name] = kept
		}
	}
	return drained
}

func (m *manager) purgeExtensionsDeclaredBy(declarer component.Name) {
	m.extMu.Lock()
	defer m.extMu.Unlock()

	for target, pending := range m.pendingExtensions {
		pending = slices.DeleteFunc(pending, func(extension *component.Extension) bool {
			return extension.Declarer() == declarer
		})
		if len(pending) == 0 {
			delete(m.pendingExtensions, target)
		} else {
			m.pendingExtensions[target] = pending
		}
	}
}

func (m *manager) clearPendingExtensions() {
	m.extMu.Lock()
	clear(m.pendingExtensions)
	m.extMu.Unlock()
}
