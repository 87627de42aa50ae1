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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/compkit/errors"
)

type stub struct {
	Base
	calls       []string
	activateErr error
	startErr    error
	stopErr     error
	panicOn     string
}

func (p *stub) record(call string) error {
	p.calls = append(p.calls, call)
	if p.panicOn == call {
		panic(call + " panicked")
	}
	return nil
}

func (p *stub) Activate(context.Context) error {
	_ = p.record("activate")
	return p.activateErr
}

func (p *stub) Deactivate(context.Context) error {
	return p.record("deactivate")
}

func (p *stub) Start(context.Context) error {
	_ = p.record("start")
	return p.startErr
}

func (p *stub) Stop(context.Context) error {
	_ = p.record("stop")
	return p.stopErr
}

type fakeHost struct {
	events     []EventKind
	services   int
	extensions []string
}

func (h *fakeHost) RegisterServices(*Registration)   { h.services++ }
func (h *fakeHost) UnregisterServices(*Registration) { h.services-- }
func (h *fakeHost) RegisterExtensions(_ context.Context, reg *Registration) {
	h.extensions = append(h.extensions, "register "+reg.Name().String())
}
func (h *fakeHost) UnregisterExtensions(_ context.Context, reg *Registration) {
	h.extensions = append(h.extensions, "unregister "+reg.Name().String())
}
func (h *fakeHost) Notify(event *Event) { h.events = append(h.events, event.Kind) }

func resolvedRegistration(t *testing.T, instance Component, host Host) *Registration {
	t.Helper()
	reg := NewRegistration("service:stub", instance)
	reg.Attach(host)
	reg.Register()
	reg.Resolve()
	require.Equal(t, Resolved, reg.State())
	return reg
}

func TestName(t *testing.T) {
	t.Run("With valid names", func(t *testing.T) {
		for _, text := range []string{"a", "service:org.example.search", "A-1_b/c"} {
			name, err := ParseName(text)
			require.NoError(t, err)
			assert.Equal(t, text, name.String())
		}
	})
	t.Run("With invalid names", func(t *testing.T) {
		for _, text := range []string{"", "-a", ":x", "a b", "a$"} {
			_, err := ParseName(text)
			require.ErrorIs(t, err, gerrors.ErrInvalidName, text)
		}
		assert.Panics(t, func() { MustParseName("") })
	})
	t.Run("With type and local parts", func(t *testing.T) {
		name := MustParseName("service:org.example.search")
		assert.Equal(t, "service", name.Type())
		assert.Equal(t, "org.example.search", name.Local())

		plain := Name("search")
		assert.Empty(t, plain.Type())
		assert.Equal(t, "search", plain.Local())
	})
	t.Run("With ordering", func(t *testing.T) {
		assert.Negative(t, Name("a").Compare("b"))
		assert.Zero(t, Name("a").Compare("a"))
		assert.Positive(t, Name("b").Compare("a"))
	})
}

func TestState(t *testing.T) {
	assert.Equal(t, "START_FAILURE", StartFailure.String())
	assert.Equal(t, "UNKNOWN", State(42).String())
	assert.False(t, Registered.IsResolved())
	assert.True(t, Resolved.IsResolved())
	assert.False(t, Activating.IsLive())
	assert.True(t, StartFailure.IsLive())
	assert.Equal(t, "extension.pending", EventExtensionPending.String())
	assert.Len(t, EventKinds(), 13)
}

func TestRegistrationValidate(t *testing.T) {
	t.Run("With a valid registration", func(t *testing.T) {
		reg := NewRegistration("service:a", Base{},
			WithAliases("a"),
			WithRequires("service:b"),
			WithExtensionPoints(NewExtensionPoint("handlers", nil)),
			WithServices(ServiceName[Component]()),
			WithOrigin("a.xml"),
			WithStartOrder(10))
		require.NoError(t, reg.Validate())
		assert.Equal(t, []Name{"service:a", "a"}, reg.Names())
		assert.Equal(t, []Name{"service:b"}, reg.Requires())
		assert.Equal(t, []string{"component.component"}, reg.Services())
		assert.Equal(t, "a.xml", reg.Origin())
		assert.Equal(t, 10, reg.StartOrder())

		point, ok := reg.ExtensionPoint("handlers")
		require.True(t, ok)
		assert.Equal(t, "handlers", point.Name())
		_, ok = reg.ExtensionPoint("missing")
		assert.False(t, ok)
	})
	t.Run("With an invalid registration", func(t *testing.T) {
		reg := NewRegistration("-bad", nil,
			WithAliases("-bad"),
			WithExtensionPoints(NewExtensionPoint("p", nil), NewExtensionPoint("p", nil)),
			WithServices(""))
		err := reg.Validate()
		require.ErrorIs(t, err, gerrors.ErrInvalidRegistration)
		assert.Contains(t, err.Error(), "instance is required")
		assert.Contains(t, err.Error(), "cannot alias itself")
		assert.Contains(t, err.Error(), "duplicate extension point")
		assert.Contains(t, err.Error(), "service name is required")
	})
	t.Run("With contributed extensions", func(t *testing.T) {
		extension := NewExtension("service:b", "handlers", "payload")
		reg := NewRegistration("service:a", Base{}, WithExtensions(extension))
		require.Len(t, reg.Extensions(), 1)
		assert.Equal(t, Name("service:a"), reg.Extensions()[0].Declarer())
		assert.Equal(t, "service:b#handlers (declared by service:a)", extension.String())
	})
}

func TestRegistrationLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("With a full lifecycle", func(t *testing.T) {
		instance := &stub{}
		host := &fakeHost{}
		reg := resolvedRegistration(t, instance, host)
		assert.Equal(t, 1, host.services)

		require.NoError(t, reg.Activate(ctx))
		require.NoError(t, reg.Activate(ctx))
		assert.Equal(t, Activated, reg.State())
		assert.True(t, reg.IsLive())

		require.NoError(t, reg.Start(ctx))
		require.NoError(t, reg.Start(ctx))
		assert.Equal(t, Started, reg.State())

		require.NoError(t, reg.Stop(ctx))
		assert.Equal(t, Activated, reg.State())

		require.NoError(t, reg.Deactivate(ctx, false))
		assert.Equal(t, Resolved, reg.State())

		require.NoError(t, reg.Unresolve(ctx))
		assert.Equal(t, Registered, reg.State())
		assert.Zero(t, host.services)

		reg.Unregister()
		assert.Equal(t, Unregistered, reg.State())

		assert.Equal(t, []string{"activate", "start", "stop", "deactivate"}, instance.calls)
		assert.Equal(t, []string{"register service:stub"}, host.extensions)
		assert.Equal(t, []EventKind{
			EventRegistered,
			EventResolved,
			EventActivating,
			EventActivated,
			EventStarted,
			EventStopped,
			EventDeactivated,
			EventUnresolved,
			EventUnregistered,
		}, host.events)
	})
	t.Run("With activation failure", func(t *testing.T) {
		instance := &stub{activateErr: errors.New("boom")}
		reg := resolvedRegistration(t, instance, nil)

		err := reg.Activate(ctx)
		require.ErrorIs(t, err, gerrors.ErrActivationFailure)
		assert.Equal(t, Resolved, reg.State())

		err = reg.Start(ctx)
		require.ErrorIs(t, err, gerrors.ErrStartFailure)
	})
	t.Run("With activation panic", func(t *testing.T) {
		instance := &stub{panicOn: "activate"}
		reg := resolvedRegistration(t, instance, nil)

		err := reg.Activate(ctx)
		var panicErr *gerrors.PanicError
		require.ErrorAs(t, err, &panicErr)
		assert.Equal(t, Resolved, reg.State())
	})
	t.Run("With start failure", func(t *testing.T) {
		instance := &stub{startErr: errors.New("boom")}
		host := &fakeHost{}
		reg := resolvedRegistration(t, instance, host)
		require.NoError(t, reg.Activate(ctx))

		require.ErrorIs(t, reg.Start(ctx), gerrors.ErrStartFailure)
		assert.Equal(t, StartFailure, reg.State())
		assert.Contains(t, host.events, EventStartFailure)

		// not started, so nothing to stop
		require.NoError(t, reg.Stop(ctx))
		require.NoError(t, reg.Deactivate(ctx, true))
		assert.Equal(t, Resolved, reg.State())
		assert.Equal(t, []string{"activate", "start", "deactivate"}, instance.calls)
		assert.Equal(t, []string{"register service:stub", "unregister service:stub"}, host.extensions)
	})
	t.Run("With stop failure", func(t *testing.T) {
		instance := &stub{stopErr: errors.New("boom")}
		reg := resolvedRegistration(t, instance, nil)
		require.NoError(t, reg.Activate(ctx))
		require.NoError(t, reg.Start(ctx))

		require.ErrorIs(t, reg.Stop(ctx), gerrors.ErrStopFailure)
		assert.Equal(t, Activated, reg.State())
	})
	t.Run("With unresolve of a started component", func(t *testing.T) {
		instance := &stub{panicOn: "deactivate"}
		reg := resolvedRegistration(t, instance, nil)
		require.NoError(t, reg.Activate(ctx))
		require.NoError(t, reg.Start(ctx))

		err := reg.Unresolve(ctx)
		require.ErrorIs(t, err, gerrors.ErrDeactivationFailure)
		assert.Equal(t, Registered, reg.State())
		assert.Equal(t, []string{"activate", "start", "stop", "deactivate"}, instance.calls)
	})
	t.Run("With resolving twice", func(t *testing.T) {
		reg := resolvedRegistration(t, Base{}, nil)
		assert.PanicsWithError(t, "invariant violation: component=(service:stub) state=RESOLVED component already resolved", func() {
			reg.Resolve()
		})
	})
	t.Run("With reconcile", func(t *testing.T) {
		reg := NewRegistration("a", Base{})
		reg.Reconcile(true)
		assert.Equal(t, Resolved, reg.State())
		reg.Reconcile(false)
		assert.Equal(t, Registered, reg.State())
	})
	t.Run("With activation of an unresolved component", func(t *testing.T) {
		reg := NewRegistration("a", Base{})
		require.ErrorIs(t, reg.Activate(ctx), gerrors.ErrActivationFailure)
	})
}

func TestExtensionPoint(t *testing.T) {
	t.Run("With default loader", func(t *testing.T) {
		extension := NewExtension("a", "p", "payload")
		require.NoError(t, NewExtensionPoint("p", nil).Load(extension))
		assert.Equal(t, []any{"payload"}, extension.Contributions())
		assert.Equal(t, "payload", extension.Payload())
		assert.Equal(t, "a#p", extension.String())
	})
	t.Run("With custom loader", func(t *testing.T) {
		point := NewExtensionPoint("p", func(extension *Extension) ([]any, error) {
			return []any{1, 2}, nil
		})
		extension := NewExtension("a", "p", nil)
		require.NoError(t, point.Load(extension))
		assert.Equal(t, []any{1, 2}, extension.Contributions())
	})
	t.Run("With failing loader", func(t *testing.T) {
		point := NewExtensionPoint("p", func(*Extension) ([]any, error) {
			return nil, errors.New("malformed")
		})
		require.ErrorIs(t, point.Load(NewExtension("a", "p", nil)), gerrors.ErrContributionLoadFailure)
	})
	t.Run("With panicking loader", func(t *testing.T) {
		point := NewExtensionPoint("p", func(*Extension) ([]any, error) {
			panic("malformed")
		})
		require.ErrorIs(t, point.Load(NewExtension("a", "p", nil)), gerrors.ErrContributionLoadFailure)
	})
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "component.component", ServiceName[Component]())
	assert.Equal(t, "component.base", ServiceNameOf(&Base{}))
}
