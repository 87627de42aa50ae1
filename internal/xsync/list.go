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

package xsync

import (
	"slices"
	"sync"
)

// List is a duplicate-free ordered collection guarded by a read-write mutex.
// Append and AppendMany ignore items already present.
type List[T comparable] struct {
	mu   sync.RWMutex
	data []T
}

// NewList creates a new List.
func NewList[T comparable]() *List[T] {
	return &List[T]{data: make([]T, 0, 4)}
}

// Len returns the number of items in the list.
func (x *List[T]) Len() int {
	x.mu.RLock()
	l := len(x.data)
	x.mu.RUnlock()
	return l
}

// Contains reports whether item is present in the list.
func (x *List[T]) Contains(item T) bool {
	x.mu.RLock()
	found := slices.Contains(x.data, item)
	x.mu.RUnlock()
	return found
}

// Append adds item to the list only if it is not already present.
func (x *List[T]) Append(item T) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if slices.Contains(x.data, item) {
		return false
	}
	x.data = append(x.data, item)
	return true
}

// AppendMany adds each item not already present.
func (x *List[T]) AppendMany(items ...T) {
	x.mu.Lock()
	for _, item := range items {
		if !slices.Contains(x.data, item) {
			x.data = append(x.data, item)
		}
	}
	x.mu.Unlock()
}

// Remove deletes the given item and reports whether it was present.
func (x *List[T]) Remove(item T) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	index := slices.Index(x.data, item)
	if index < 0 {
		return false
	}
	x.data = slices.Delete(x.data, index, index+1)
	return true
}

// RemoveFunc deletes every item matching fn and returns them in list order.
func (x *List[T]) RemoveFunc(fn func(T) bool) []T {
	x.mu.Lock()
	defer x.mu.Unlock()
	var removed []T
	kept := x.data[:0]
	for _, item := range x.data {
		if fn(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	clear(x.data[len(kept):])
	x.data = kept
	return removed
}

// Items returns a copy of all elements in insertion order.
func (x *List[T]) Items() []T {
	x.mu.RLock()
	out := slices.Clone(x.data)
	x.mu.RUnlock()
	return out
}

// Reset removes all elements.
func (x *List[T]) Reset() {
	x.mu.Lock()
	clear(x.data)
	x.data = x.data[:0]
	x.mu.Unlock()
}
