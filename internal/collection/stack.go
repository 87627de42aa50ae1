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

package collection

// Stack is a LIFO worklist. It is not safe for concurrent use
// and is meant to be owned by a single traversal.
type Stack[T any] struct {
	items []T
}

// NewStack creates a Stack seeded with the given items.
// The last seed is on top.
func NewStack[T any](seed ...T) *Stack[T] {
	items := make([]T, len(seed), len(seed)+8)
	copy(items, seed)
	return &Stack[T]{items: items}
}

// Push pushes a value on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// PushAll pushes the values so that the first one ends up on top.
func (s *Stack[T]) PushAll(values ...T) {
	for i := len(values) - 1; i >= 0; i-- {
		s.items = append(s.items, values[i])
	}
}

// Pop pops value from the top of the stack.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	n := len(s.items)
	if n == 0 {
		return zero, false
	}
	v := s.items[n-1]
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// Peek helps view the top item on the stack
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the length of the Stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// IsEmpty reports whether the stack holds no item.
func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}
