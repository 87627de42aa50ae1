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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type failingMeter struct {
	metric.Meter
	failures map[string]error
}

func (m failingMeter) Int64ObservableGauge(name string, opts ...metric.Int64ObservableGaugeOption) (metric.Int64ObservableGauge, error) {
	if err, ok := m.failures[name]; ok {
		return nil, err
	}
	return m.Meter.Int64ObservableGauge(name, opts...)
}

func (m failingMeter) Int64Counter(name string, opts ...metric.Int64CounterOption) (metric.Int64Counter, error) {
	if err, ok := m.failures[name]; ok {
		return nil, err
	}
	return m.Meter.Int64Counter(name, opts...)
}

func TestProvider(t *testing.T) {
	provider := NewProvider(noop.NewMeterProvider())
	require.NotNil(t, provider.Meter())

	otel.SetMeterProvider(noop.NewMeterProvider())
	require.NotNil(t, NewProvider(nil).Meter())
}

func TestContainerMetric(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	instruments, err := NewContainerMetric(meter)
	require.NoError(t, err)

	require.NotNil(t, instruments.Registered())
	require.NotNil(t, instruments.Resolved())
	require.NotNil(t, instruments.Pending())
	require.NotNil(t, instruments.Started())
	require.NotNil(t, instruments.Stashed())
	require.NotNil(t, instruments.ActivationFailures())
	require.NotNil(t, instruments.StartFailures())
	require.Len(t, instruments.Observables(), 5)
}

func TestContainerMetricErrors(t *testing.T) {
	errBoom := errors.New("boom")
	baseMeter := noop.NewMeterProvider().Meter("test")

	for _, name := range []string{
		"container.components.registered",
		"container.components.resolved",
		"container.components.pending",
		"container.components.started",
		"container.stash.size",
		"container.activation.failures",
		"container.start.failures",
	} {
		t.Run(name, func(t *testing.T) {
			meter := failingMeter{Meter: baseMeter, failures: map[string]error{name: errBoom}}
			instruments, err := NewContainerMetric(meter)
			require.Error(t, err)
			require.Nil(t, instruments)
		})
	}
}
