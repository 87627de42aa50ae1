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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/compkit/component"
	"github.com/tochemey/compkit/eventstream"
	"github.com/tochemey/compkit/log"
)

type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(entry string) {
	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return slices.Clone(j.entries)
}

func (j *journal) reset() {
	j.mu.Lock()
	j.entries = nil
	j.mu.Unlock()
}

type stub struct {
	component.Base
	name        string
	journal     *journal
	activateErr   error
	startErr      error
	stopErr       error
	deactivateErr error
	// activation attempts failing before the first success
	failures int
	// runs inside Activate with the context handed by the manager
	onActivate func(ctx context.Context) error

	mu            sync.Mutex
	contributions []any
	withdrawn     []*component.Extension
}

func newStub(name string, j *journal) *stub {
	return &stub{name: name, journal: j}
}

func (p *stub) Activate(ctx context.Context) error {
	p.journal.add("activate:" + p.name)
	if p.onActivate != nil {
		if err := p.onActivate(ctx); err != nil {
			return err
		}
	}
	if p.failures > 0 {
		p.failures--
		return errors.New("not ready")
	}
	return p.activateErr
}

func (p *stub) Start(context.Context) error {
	p.journal.add("start:" + p.name)
	return p.startErr
}

func (p *stub) Stop(context.Context) error {
	p.journal.add("stop:" + p.name)
	return p.stopErr
}

func (p *stub) Deactivate(context.Context) error {
	p.journal.add("deactivate:" + p.name)
	return p.deactivateErr
}

func (p *stub) RegisterExtension(_ context.Context, extension *component.Extension) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.contributions = append(p.contributions, extension.Contributions()...)
	return nil
}

func (p *stub) UnregisterExtension(_ context.Context, extension *component.Extension) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.withdrawn = append(p.withdrawn, extension)
	return nil
}

func (p *stub) received() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.contributions)
}

func (p *stub) removed() []*component.Extension {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.withdrawn)
}

type greeter interface {
	Greet() string
}

type greeterStub struct {
	*stub
}

func (g greeterStub) Greet() string {
	return "hello from " + g.name
}

func (g greeterStub) Adapter(service string) any {
	if service == component.ServiceName[greeter]() {
		return g
	}
	return nil
}

type recordingListener struct {
	BaseListener
	mu    sync.Mutex
	calls []string
}

func (l *recordingListener) record(call string, m Manager) {
	l.mu.Lock()
	l.calls = append(l.calls, fmt.Sprintf("%s started=%t", call, m.IsStarted()))
	l.mu.Unlock()
}

func (l *recordingListener) BeforeStart(_ context.Context, m Manager) { l.record("before-start", m) }
func (l *recordingListener) AfterStart(_ context.Context, m Manager)  { l.record("after-start", m) }
func (l *recordingListener) BeforeStop(_ context.Context, m Manager)  { l.record("before-stop", m) }
func (l *recordingListener) AfterStop(_ context.Context, m Manager)   { l.record("after-stop", m) }

func (l *recordingListener) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.calls)
}

func newManager(t *testing.T, opts ...Option) (Manager, *Warnings) {
	t.Helper()
	warnings := NewWarnings()
	opts = append([]Option{WithLogger(log.DiscardLogger), WithWarnings(warnings)}, opts...)
	m, err := NewManager(opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, m.Shutdown(context.Background()))
	})
	return m, warnings
}

func register(t *testing.T, m Manager, j *journal, name string, opts ...component.RegistrationOption) *component.Registration {
	t.Helper()
	reg := component.NewRegistration(component.Name(name), newStub(name, j), opts...)
	require.NoError(t, m.Register(context.TODO(), reg))
	return reg
}

func names(regs []*component.Registration) []component.Name {
	out := make([]component.Name, 0, len(regs))
	for _, reg := range regs {
		out = append(out, reg.Name())
	}
	return out
}

func events(sub eventstream.Subscriber) []string {
	var out []string
	for message := range sub.Iterator() {
		event := message.Payload().(*component.Event)
		out = append(out, fmt.Sprintf("%s %s", event.Kind, event.Component))
	}
	return out
}
