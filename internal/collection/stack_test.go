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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	t.Run("With push and pop", func(t *testing.T) {
		stack := NewStack[string]()
		assert.True(t, stack.IsEmpty())

		stack.Push("a")
		stack.Push("b")
		require.Equal(t, 2, stack.Len())

		top, ok := stack.Peek()
		require.True(t, ok)
		assert.Equal(t, "b", top)

		v, ok := stack.Pop()
		require.True(t, ok)
		assert.Equal(t, "b", v)
		v, ok = stack.Pop()
		require.True(t, ok)
		assert.Equal(t, "a", v)

		_, ok = stack.Pop()
		assert.False(t, ok)
		_, ok = stack.Peek()
		assert.False(t, ok)
	})
	t.Run("With seed and PushAll", func(t *testing.T) {
		stack := NewStack(1, 2)
		stack.PushAll(3, 4, 5)

		var popped []int
		for !stack.IsEmpty() {
			v, _ := stack.Pop()
			popped = append(popped, v)
		}
		assert.Equal(t, []int{3, 4, 5, 2, 1}, popped)
	})
}
