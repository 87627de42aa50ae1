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
)

// GetService returns the service of type T, named after T with
// component.ServiceName, activating its provider on demand.
func GetService[T any](ctx context.Context, m Manager) (T, error) {
	var zero T
	name := component.ServiceName[T]()

	instance, err := m.Service(ctx, name)
	if err != nil {
		return zero, err
	}

	service, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("service=(%s) adapter returned %T: %w", name, instance, gerrors.ErrServiceNotFound)
	}
	return service, nil
}

func (m *manager) Service(ctx context.Context, service string) (any, error) {
	ctx, unlock := m.lock(ctx)
	defer unlock()
	return m.service(ctx, service)
}

// service activates and starts the provider as needed. The caller holds the lock.
func (m *manager) service(ctx context.Context, service string) (any, error) {
	reg, ok := m.services.Get(service)
	if !ok {
		return nil, gerrors.NewErrServiceNotFound(service)
	}

	if err := m.activate(ctx, reg); err != nil {
		m.handleError(err)
		m.metrics.recordActivationFailure(ctx)
		return nil, err
	}

	if m.started.Load() && reg.State() == component.Activated {
		if err := reg.Start(ctx); err != nil {
			m.handleError(err)
			m.metrics.recordStartFailure(ctx)
			return nil, err
		}
		m.startedList.Append(reg)
	}

	instance := reg.Instance().Adapter(service)
	if instance == nil {
		return nil, gerrors.NewErrServiceNotFound(service)
	}
	return instance, nil
}

func (m *manager) ComponentProvidingService(service string) (*component.Registration, bool) {
	return m.services.Get(service)
}

func (m *manager) Services() []string {
	services := m.services.Keys()
	slices.Sort(services)
	return services
}

// RegisterServices indexes the services of a resolved registration.
func (m *manager) RegisterServices(reg *component.Registration) {
	m.indexServices(reg)
}

// UnregisterServices removes the services of an unresolved registration.
func (m *manager) UnregisterServices(reg *component.Registration) {
	m.services.DeleteFunc(func(_ string, provider *component.Registration) bool {
		return provider == reg
	})
}

// indexServices keeps the first provider of a service name.
func (m *manager) indexServices(reg *component.Registration) {
	for _, service := range reg.Services() {
		if provider, stored := m.services.SetIfAbsent(service, reg); !stored && provider != reg {
			m.handleError(gerrors.NewErrServiceAlreadyProvided(service, provider.Name().String(), reg.Name().String()))
		}
	}
}
