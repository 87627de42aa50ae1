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

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/compkit/internal/metric"
)

// containerMetrics reports the state of a manager. A nil value records nothing.
type containerMetrics struct {
	instruments  *metric.ContainerMetric
	registration otelmetric.Registration
	attributes   otelmetric.MeasurementOption
}

func newContainerMetrics(m *manager) (*containerMetrics, error) {
	meter := metric.NewProvider(m.meterProvider).Meter()
	instruments, err := metric.NewContainerMetric(meter)
	if err != nil {
		return nil, err
	}

	metrics := &containerMetrics{
		instruments: instruments,
		attributes:  otelmetric.WithAttributes(attribute.String("container", m.name)),
	}

	metrics.registration, err = meter.RegisterCallback(func(_ context.Context, observer otelmetric.Observer) error {
		current := m.registry.Load()
		observer.ObserveInt64(instruments.Registered(), int64(current.Size()), metrics.attributes)
		observer.ObserveInt64(instruments.Resolved(), int64(len(current.ResolvedNames())), metrics.attributes)
		observer.ObserveInt64(instruments.Pending(), int64(len(current.PendingComponents())), metrics.attributes)
		observer.ObserveInt64(instruments.Started(), int64(m.startedList.Len()), metrics.attributes)
		observer.ObserveInt64(instruments.Stashed(), m.stash.Len(), metrics.attributes)
		return nil
	}, instruments.Observables()...)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

func (x *containerMetrics) recordActivationFailure(ctx context.Context) {
	if x == nil {
		return
	}
	x.instruments.ActivationFailures().Add(ctx, 1, x.attributes)
}

func (x *containerMetrics) recordStartFailure(ctx context.Context) {
	if x == nil {
		return
	}
	x.instruments.StartFailures().Add(ctx, 1, x.attributes)
}

func (x *containerMetrics) unregister() error {
	if x == nil || x.registration == nil {
		return nil
	}
	return x.registration.Unregister()
}
