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
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/compkit/component"
	"github.com/tochemey/compkit/log"
)

// Option is the interface that applies a manager option.
type Option interface {
	// Apply sets the Option value of a manager.
	Apply(m *manager)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*manager)

func (f OptionFunc) Apply(m *manager) {
	f(m)
}

// WithName sets the manager name used in logs and metric attributes
func WithName(name string) Option {
	return OptionFunc(func(m *manager) {
		m.name = name
	})
}

// WithLogger sets the manager logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(m *manager) {
		m.logger = logger
	})
}

// WithBlacklist sets the names of the components to ignore at registration
func WithBlacklist(names ...component.Name) Option {
	return OptionFunc(func(m *manager) {
		m.blacklist.Append(names...)
	})
}

// WithWarnings sets the sink recording handled errors.
// Managers share DefaultWarnings otherwise.
func WithWarnings(warnings *Warnings) Option {
	return OptionFunc(func(m *manager) {
		m.warnings = warnings
	})
}

// WithActivationRetries sets how many times a failing activation is attempted
// before the component is reported as failed. The default is a single attempt.
func WithActivationRetries(maxTries int) Option {
	return OptionFunc(func(m *manager) {
		m.activationTries = maxTries
	})
}

// WithListeners adds start and stop listeners
func WithListeners(listeners ...Listener) Option {
	return OptionFunc(func(m *manager) {
		m.listeners.AppendMany(listeners...)
	})
}

// WithMetrics enables the container metrics using the global MeterProvider
func WithMetrics() Option {
	return OptionFunc(func(m *manager) {
		m.metricsEnabled = true
	})
}

// WithMeterProvider enables the container metrics using the given MeterProvider
func WithMeterProvider(provider otelmetric.MeterProvider) Option {
	return OptionFunc(func(m *manager) {
		m.metricsEnabled = true
		m.meterProvider = provider
	})
}
