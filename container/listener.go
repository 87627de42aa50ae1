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

import "context"

// Listener is notified around the start and stop sequences of a Manager.
// Implementations must be comparable, typically pointers.
type Listener interface {
	BeforeStart(ctx context.Context, manager Manager)
	AfterStart(ctx context.Context, manager Manager)
	BeforeStop(ctx context.Context, manager Manager)
	AfterStop(ctx context.Context, manager Manager)
}

// BaseListener ignores every notification. Embed it to implement only
// the callbacks of interest.
type BaseListener struct{}

var _ Listener = BaseListener{}

func (BaseListener) BeforeStart(context.Context, Manager) {}
func (BaseListener) AfterStart(context.Context, Manager)  {}
func (BaseListener) BeforeStop(context.Context, Manager)  {}
func (BaseListener) AfterStop(context.Context, Manager)   {}
