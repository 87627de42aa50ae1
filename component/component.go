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

	"github.com/tochemey/compkit/internal/types"
)

// Component is the callback surface of a component instance.
// Callbacks run synchronously on the goroutine driving the container.
type Component interface {
	// Activate is called once every requirement of the component is resolved
	// and the container needs the instance.
	Activate(ctx context.Context) error
	// Deactivate releases what Activate acquired.
	Deactivate(ctx context.Context) error
	// Start is called after every resolved component has been activated.
	Start(ctx context.Context) error
	// Stop reverses Start.
	Stop(ctx context.Context) error
	// RegisterExtension receives an extension contributed to one of the
	// component extension points.
	RegisterExtension(ctx context.Context, extension *Extension) error
	// UnregisterExtension withdraws a previously registered extension.
	UnregisterExtension(ctx context.Context, extension *Extension) error
	// Adapter returns the implementation of the given service, or nil.
	Adapter(service string) any
}

// Base is a Component doing nothing. Embed it to implement only the
// callbacks a component cares about.
type Base struct{}

var _ Component = Base{}

func (Base) Activate(context.Context) error                        { return nil }
func (Base) Deactivate(context.Context) error                      { return nil }
func (Base) Start(context.Context) error                           { return nil }
func (Base) Stop(context.Context) error                            { return nil }
func (Base) RegisterExtension(context.Context, *Extension) error   { return nil }
func (Base) UnregisterExtension(context.Context, *Extension) error { return nil }
func (Base) Adapter(string) any                                    { return nil }

// ServiceName returns the service name derived from the Go type T.
// Components declare it with WithServices and match it in Adapter.
func ServiceName[T any]() string {
	return types.NameOf[T]()
}

// ServiceNameOf returns the service name derived from the dynamic type of v.
func ServiceNameOf(v any) string {
	return types.TypeName(v)
}
