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
	"slices"
	"sync"

	"go.uber.org/multierr"
)

// DefaultWarnings is the process-wide warnings sink used by managers
// created without WithWarnings.
var DefaultWarnings = NewWarnings()

// Warnings accumulates the diagnostics of errors the container handled
// without failing the caller, such as rejected registrations or components
// failing to activate.
type Warnings struct {
	mu       sync.RWMutex
	messages []string
	err      error
}

// NewWarnings creates an empty Warnings sink
func NewWarnings() *Warnings {
	return &Warnings{}
}

// Add records the error. Nil errors are ignored.
func (w *Warnings) Add(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	w.messages = append(w.messages, err.Error())
	w.err = multierr.Append(w.err, err)
	w.mu.Unlock()
}

// List returns the recorded messages in recording order.
func (w *Warnings) List() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.messages)
}

// Err returns the recorded errors combined, or nil.
func (w *Warnings) Err() error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.err
}

// Len returns the number of recorded warnings
func (w *Warnings) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.messages)
}

// Reset drops every recorded warning
func (w *Warnings) Reset() {
	w.mu.Lock()
	w.messages = nil
	w.err = nil
	w.mu.Unlock()
}
