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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// ContainerMetric groups the instruments describing a component container.
//
// Observable gauges, reported through a callback:
//   - container.components.registered
//   - container.components.resolved
//   - container.components.pending
//   - container.components.started
//   - container.stash.size
//
// Counters, recorded as failures happen:
//   - container.activation.failures
//   - container.start.failures
type ContainerMetric struct {
	registered         metric.Int64ObservableGauge
	resolved           metric.Int64ObservableGauge
	pending            metric.Int64ObservableGauge
	started            metric.Int64ObservableGauge
	stashed            metric.Int64ObservableGauge
	activationFailures metric.Int64Counter
	startFailures      metric.Int64Counter
}

// NewContainerMetric creates the container instruments using the provided Meter.
func NewContainerMetric(meter metric.Meter) (*ContainerMetric, error) {
	var (
		instruments ContainerMetric
		err         error
	)

	gauges := []struct {
		target      *metric.Int64ObservableGauge
		name        string
		description string
	}{
		{&instruments.registered, "container.components.registered", "Number of components registered in the container"},
		{&instruments.resolved, "container.components.resolved", "Number of components with every requirement satisfied"},
		{&instruments.pending, "container.components.pending", "Number of components waiting on a requirement"},
		{&instruments.started, "container.components.started", "Number of started components"},
		{&instruments.stashed, "container.stash.size", "Number of registrations deferred while a snapshot is held"},
	}

	for _, gauge := range gauges {
		if *gauge.target, err = meter.Int64ObservableGauge(gauge.name, metric.WithDescription(gauge.description)); err != nil {
			return nil, fmt.Errorf("failed to create %s instrument, %v", gauge.name, err)
		}
	}

	if instruments.activationFailures, err = meter.Int64Counter(
		"container.activation.failures",
		metric.WithDescription("Total number of component activation failures"),
	); err != nil {
		return nil, fmt.Errorf("failed to create activation failures instrument, %v", err)
	}

	if instruments.startFailures, err = meter.Int64Counter(
		"container.start.failures",
		metric.WithDescription("Total number of component start failures"),
	); err != nil {
		return nil, fmt.Errorf("failed to create start failures instrument, %v", err)
	}

	return &instruments, nil
}

// Registered returns the gauge reporting registered components.
func (x *ContainerMetric) Registered() metric.Int64ObservableGauge {
	return x.registered
}

// Resolved returns the gauge reporting resolved components.
func (x *ContainerMetric) Resolved() metric.Int64ObservableGauge {
	return x.resolved
}

// Pending returns the gauge reporting pending components.
func (x *ContainerMetric) Pending() metric.Int64ObservableGauge {
	return x.pending
}

// Started returns the gauge reporting started components.
func (x *ContainerMetric) Started() metric.Int64ObservableGauge {
	return x.started
}

// Stashed returns the gauge reporting the stash size.
func (x *ContainerMetric) Stashed() metric.Int64ObservableGauge {
	return x.stashed
}

// ActivationFailures returns the activation failures counter.
func (x *ContainerMetric) ActivationFailures() metric.Int64Counter {
	return x.activationFailures
}

// StartFailures returns the start failures counter.
func (x *ContainerMetric) StartFailures() metric.Int64Counter {
	return x.startFailures
}

// Observables returns every observable instrument, to be passed to
// Meter.RegisterCallback.
func (x *ContainerMetric) Observables() []metric.Observable {
	return []metric.Observable{x.registered, x.resolved, x.pending, x.started, x.stashed}
}
